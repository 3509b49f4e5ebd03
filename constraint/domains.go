package constraint

import (
	"github.com/jiankangren/DeSyDe-meta/position"
)

// Domains returns, for every group id in [0,numApps), the ascending list of
// processors assigned to it by procGroup.
func Domains(procGroup []int, numApps int) [][]int {
	out := make([][]int, numApps)
	for proc, g := range procGroup {
		if g >= 0 && g < numApps {
			out[g] = append(out[g], proc)
		}
	}

	return out
}

// RepairDomains restores the symmetry-group invariants of a domain-mapped
// position:
//
//  1. application i belongs to a group in [0,i];
//  2. every processor belongs to a group used by some application;
//  3. every used group owns at least one processor, taken from a group that
//     owns more than one; group 0 takes one in any case;
//  4. an application whose group still owns no processor moves to the
//     highest group in [0,i] that does, which exists because group 0 does.
//  5. every actor maps into its application's group with its index clamped
//     to the domain size.
func (c *Checker) RepairDomains(p *position.Position) {
	numApps := c.apps.NumApps()
	if len(p.AppGroup) != numApps {
		p.AppGroup = make([]int, numApps)
	}
	if len(p.ProcGroup) != c.numProcs {
		p.ProcGroup = make([]int, c.numProcs)
	}

	// 1) symmetry breaking
	usedSet := make([]bool, numApps)
	var used []int
	for app := range p.AppGroup {
		g := clamp(p.AppGroup[app], 0, app)
		p.AppGroup[app] = g
		if !usedSet[g] {
			usedSet[g] = true
			used = append(used, g)
		}
	}

	// 2) processors only in used groups
	for proc := range p.ProcGroup {
		g := clamp(p.ProcGroup[proc], 0, numApps-1)
		if !usedSet[g] {
			g, _ = c.src.Pick(used)
		}
		p.ProcGroup[proc] = g
	}

	// 3) every used group is represented once, if processors allow; group 0
	// always gets a processor, even at the cost of emptying another group
	for _, g := range used {
		owners := make(map[int]int, numApps)
		for _, pg := range p.ProcGroup {
			owners[pg]++
		}
		if owners[g] > 0 {
			continue
		}
		donor := -1
		for proc, pg := range p.ProcGroup {
			if owners[pg] > 1 {
				donor = proc
				break
			}
		}
		if donor < 0 && g == 0 {
			donor = len(p.ProcGroup) - 1
		}
		if donor >= 0 {
			p.ProcGroup[donor] = g
		}
	}

	// 4) applications of empty groups move to the highest populated group
	// not above their own index
	domains := Domains(p.ProcGroup, numApps)
	for app, g := range p.AppGroup {
		if len(domains[g]) > 0 {
			continue
		}
		for h := min(app, numApps-1); h >= 0; h-- {
			if len(domains[h]) > 0 {
				p.AppGroup[app] = h
				break
			}
		}
	}

	// 5) actor mappings follow their application's domain
	for a, m := range p.Mappings {
		g := p.AppGroup[c.apps.AppOf(a)]
		idx := clamp(m.Index(), 0, len(domains[g])-1)
		p.Mappings[a] = position.FromDomain(g, domains[g], idx)
	}
}
