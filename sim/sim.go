package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/fitness"
	"github.com/jiankangren/DeSyDe-meta/model"
)

// New returns an Engine simulating designs of m.
func New(m *model.Model, opts ...Option) *Engine {
	e := &Engine{m: m, log: discardLogger()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Build implements fitness.Engine.
func (e *Engine) Build(d fitness.Design) (fitness.Simulator, error) {
	r, err := e.Run(d)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Run simulates one iteration of d.
func (e *Engine) Run(d fitness.Design) (*Result, error) {
	apps, plat := e.m.Apps, e.m.Platform
	nA, nC, nP := apps.NumActors(), apps.NumChannels(), plat.NumProcessors()

	if len(d.Mappings) != nA || len(d.Modes) != nP || len(d.TDMA) != nP {
		return nil, fmt.Errorf("%d mappings, %d modes, %d tdma: %w", len(d.Mappings), len(d.Modes), len(d.TDMA), ErrDesign)
	}
	for a, proc := range d.Mappings {
		if proc < 0 || proc >= nP {
			return nil, fmt.Errorf("actor %d on processor %d: %w", a, proc, ErrDesign)
		}
	}
	execOrder, err := rings(d.ProcNext, nA, nP)
	if err != nil {
		return nil, fmt.Errorf("execution: %w", err)
	}
	for proc, order := range execOrder {
		for _, a := range order {
			if d.Mappings[a] != proc {
				return nil, fmt.Errorf("actor %d scheduled on %d, mapped to %d: %w", a, proc, d.Mappings[a], ErrDesign)
			}
		}
	}
	sendOrder, err := rings(d.SendNext, nC, nP)
	if err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	if _, err = rings(d.RecNext, nC, nP); err != nil {
		return nil, fmt.Errorf("receive: %w", err)
	}

	s := newState(e.m, d, sendOrder)
	s.run(execOrder)

	r := s.result()
	if len(r.stalled) > 0 {
		e.log.WithFields(logrus.Fields{"stalled": r.stalled}).Debug("iteration stalled")
	}

	return r, nil
}

// rings splits a flattened successor array into per-processor orders. The
// array must hold n elements followed by nP dummies, each processor's chain
// starting at the previous processor's dummy and ending at its own.
func rings(next []int, n, nP int) ([][]int, error) {
	if len(next) != n+nP {
		return nil, fmt.Errorf("length %d, want %d: %w", len(next), n+nP, ErrRing)
	}
	out := make([][]int, nP)
	seen := make([]bool, n)
	for proc := 0; proc < nP; proc++ {
		e := next[n+(proc+nP-1)%nP]
		for e != n+proc {
			if e < 0 || e >= n || seen[e] {
				return nil, fmt.Errorf("processor %d at %d: %w", proc, e, ErrRing)
			}
			seen[e] = true
			out[proc] = append(out[proc], e)
			e = next[e]
		}
	}

	return out, nil
}

// state is the mutable simulation of one design.
type state struct {
	m *model.Model
	d fitness.Design

	dur    []int64 // per actor
	inputs [][]int // zero-token channels per destination actor
	queue  [][]int // inter-processor channels per source processor, send order

	start, finish []int64 // per actor, -1 until run
	arrive        []int64 // per channel, -1 until delivered
	procFree      []int64
	linkFree      []int64
}

func newState(m *model.Model, d fitness.Design, sendOrder [][]int) *state {
	apps, plat := m.Apps, m.Platform
	nA, nC, nP := apps.NumActors(), apps.NumChannels(), plat.NumProcessors()
	s := &state{
		m:        m,
		d:        d,
		dur:      make([]int64, nA),
		inputs:   make([][]int, nA),
		queue:    make([][]int, nP),
		start:    filled(nA, -1),
		finish:   filled(nA, -1),
		arrive:   filled(nC, -1),
		procFree: make([]int64, nP),
		linkFree: make([]int64, nP),
	}
	for a := 0; a < nA; a++ {
		proc := d.Mappings[a]
		mode := plat.Mode(proc, d.Modes[proc])
		s.dur[a] = int64(math.Ceil(float64(apps.Actor(a).WCET) * 100 / mode.Speed))
	}

	queued := make([]bool, nC)
	for proc, order := range sendOrder {
		for _, ch := range order {
			if s.crossing(ch) && d.Mappings[apps.Channel(ch).Src] == proc {
				s.queue[proc] = append(s.queue[proc], ch)
				queued[ch] = true
			}
		}
	}
	for ch := 0; ch < nC; ch++ {
		c := apps.Channel(ch)
		if c.Tokens == 0 {
			s.inputs[c.Dst] = append(s.inputs[c.Dst], ch)
		}
		if s.crossing(ch) && !queued[ch] {
			src := d.Mappings[c.Src]
			s.queue[src] = append(s.queue[src], ch)
		}
	}

	return s
}

func filled(n int, v int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// crossing reports whether channel ch connects two processors.
func (s *state) crossing(ch int) bool {
	c := s.m.Apps.Channel(ch)

	return s.d.Mappings[c.Src] != s.d.Mappings[c.Dst]
}

// latency is the transfer time of one token of ch over the source's slots.
func (s *state) latency(ch int) int64 {
	c := s.m.Apps.Channel(ch)
	slots := int64(s.d.TDMA[s.d.Mappings[c.Src]])
	if slots < 1 {
		slots = 1
	}

	return (c.TokenSize + slots - 1) / slots * s.m.Platform.SlotLength
}

// readyAt returns when every zero-token input of a is available.
func (s *state) readyAt(a int) (int64, bool) {
	var t int64
	for _, ch := range s.inputs[a] {
		c := s.m.Apps.Channel(ch)
		at := s.arrive[ch]
		if !s.crossing(ch) {
			at = s.finish[c.Src]
		}
		if at < 0 {
			return 0, false
		}
		t = max(t, at)
	}

	return t, true
}

// run advances every processor and link until nothing more can happen.
func (s *state) run(execOrder [][]int) {
	pos := make([]int, len(execOrder))
	sent := make([]int, len(execOrder))
	for progress := true; progress; {
		progress = false
		for proc := range execOrder {
			for pos[proc] < len(execOrder[proc]) {
				a := execOrder[proc][pos[proc]]
				t, ok := s.readyAt(a)
				if !ok {
					break
				}
				s.start[a] = max(t, s.procFree[proc])
				s.finish[a] = s.start[a] + s.dur[a]
				s.procFree[proc] = s.finish[a]
				pos[proc]++
				progress = true
			}
			for sent[proc] < len(s.queue[proc]) {
				ch := s.queue[proc][sent[proc]]
				src := s.m.Apps.Channel(ch).Src
				if s.finish[src] < 0 {
					break
				}
				s.arrive[ch] = max(s.finish[src], s.linkFree[proc]) + s.latency(ch)
				s.linkFree[proc] = s.arrive[ch]
				sent[proc]++
				progress = true
			}
		}
	}
}

func (s *state) result() *Result {
	apps, plat := s.m.Apps, s.m.Platform
	nP := plat.NumProcessors()

	busy := make([]int64, nP)
	for a, proc := range s.d.Mappings {
		busy[proc] += s.dur[a]
	}

	r := &Result{
		periods: make([]int64, apps.NumApps()),
		slack:   make([]int64, nP),
		start:   s.start,
		finish:  s.finish,
	}
	for a, f := range s.finish {
		if f < 0 {
			r.stalled = append(r.stalled, a)
		}
	}

	for app := range r.periods {
		var period int64
		for _, a := range apps.ActorsOf(app) {
			if s.finish[a] < 0 {
				period = Stalled
				break
			}
			period = max(period, s.finish[a], busy[s.d.Mappings[a]])
		}
		r.periods[app] = period
	}

	var energy float64
	for proc := 0; proc < nP; proc++ {
		energy += plat.Mode(proc, s.d.Modes[proc]).Power * float64(busy[proc])
	}
	r.energy = int64(math.Ceil(energy))

	used := make([]int64, nP)
	for a, proc := range s.d.Mappings {
		used[proc] += apps.Actor(a).Memory
	}
	for ch := 0; ch < apps.NumChannels(); ch++ {
		c := apps.Channel(ch)
		used[s.d.Mappings[c.Dst]] += (c.Tokens + 1) * c.TokenSize
	}
	for proc := 0; proc < nP; proc++ {
		mem := plat.Processors[proc].Memory
		if mem == 0 {
			r.slack[proc] = math.MaxInt64
			continue
		}
		r.slack[proc] = mem - used[proc]
	}

	return r
}
