package position

import "fmt"

// Unrestricted returns a mapping straight to processor proc.
func Unrestricted(proc int) Mapping {
	return Mapping{kind: KindUnrestricted, proc: proc}
}

// FromDomain returns a mapping to domain[index] of symmetry group group.
// The domain slice is copied.
func FromDomain(group int, domain []int, index int) Mapping {
	return Mapping{
		kind:   KindFromDomain,
		group:  group,
		domain: append([]int(nil), domain...),
		index:  index,
	}
}

// Kind returns the representation.
func (m Mapping) Kind() Kind { return m.kind }

// Group returns the symmetry group of a FromDomain mapping, -1 otherwise.
func (m Mapping) Group() int {
	if m.kind != KindFromDomain {
		return -1
	}

	return m.group
}

// Index returns the raw value moved by the search: the processor of an
// unrestricted mapping or the within-domain index.
func (m Mapping) Index() int {
	if m.kind == KindFromDomain {
		return m.index
	}

	return m.proc
}

// Domain returns a copy of the eligible processors (nil when unrestricted).
func (m Mapping) Domain() []int { return append([]int(nil), m.domain...) }

// DomainSize returns the number of eligible processors.
func (m Mapping) DomainSize() int { return len(m.domain) }

// Processor resolves the target processor. An out-of-range domain index is
// clamped; an empty domain resolves to -1.
func (m Mapping) Processor() int {
	if m.kind == KindUnrestricted {
		return m.proc
	}
	if len(m.domain) == 0 {
		return -1
	}
	i := m.index
	if i < 0 {
		i = 0
	}
	if i >= len(m.domain) {
		i = len(m.domain) - 1
	}

	return m.domain[i]
}

// WithIndex returns m with its raw value replaced (see Index).
func (m Mapping) WithIndex(v int) Mapping {
	out := m.clone()
	if out.kind == KindFromDomain {
		out.index = v
	} else {
		out.proc = v
	}

	return out
}

// Clamp limits the raw value to the eligible range: [0,numProcs) for an
// unrestricted mapping, [0,len(domain)) otherwise.
func (m Mapping) Clamp(numProcs int) Mapping {
	hi := numProcs - 1
	if m.kind == KindFromDomain {
		hi = len(m.domain) - 1
	}
	v := m.Index()
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}

	return m.WithIndex(v)
}

// IndexOf returns the raw value that resolves to proc, or -1 if proc is not
// eligible.
func (m Mapping) IndexOf(proc int) int {
	if m.kind == KindUnrestricted {
		return proc
	}
	for i, p := range m.domain {
		if p == proc {
			return i
		}
	}

	return -1
}

// String renders "p3" or "g1[2]→p5".
func (m Mapping) String() string {
	if m.kind == KindUnrestricted {
		return fmt.Sprintf("p%d", m.proc)
	}

	return fmt.Sprintf("g%d[%d]→p%d", m.group, m.index, m.Processor())
}

func (m Mapping) clone() Mapping {
	m.domain = append([]int(nil), m.domain...)

	return m
}
