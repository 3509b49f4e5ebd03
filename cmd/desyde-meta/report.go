package main

import (
	"fmt"
	"io"

	"github.com/gookit/color"

	"github.com/jiankangren/DeSyDe-meta/config"
	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/swarm"
)

func report(w io.Writer, cfg config.Config, res *swarm.Result, numApps int) {
	title := color.Style{color.FgGreen, color.OpBold}
	fmt.Fprintln(w, title.Sprintf("Run %s", res.RunID))
	field(w, "Variant:     ", string(cfg.Search.Variant))
	field(w, "Generations: ", fmt.Sprintf("%d", res.Generations))
	field(w, "Restarts:    ", fmt.Sprintf("%d", res.Restarts))
	field(w, "Duration:    ", res.Duration.String())
	field(w, "Mean/StdDev: ", fmt.Sprintf("%.2f / %.2f (min %.0f)", res.Stats.Mean, res.Stats.StdDev, res.Stats.Min))
	if res.Cancelled {
		fmt.Fprintln(w, color.Warn.Sprint("Search interrupted"))
	}

	if len(res.Front) == 0 {
		fmt.Fprintln(w, color.Warn.Sprint("No valid solution found"))
		return
	}
	for i, p := range res.Front {
		fmt.Fprintln(w, title.Sprintf("Solution %d", i))
		field(w, "Periods:     ", fmt.Sprintf("%v", p.Fitness[:min(numApps, len(p.Fitness))]))
		if numApps < len(p.Fitness) {
			field(w, "Energy:      ", fmt.Sprintf("%d", p.Fitness[numApps]))
		}
		field(w, "Mapping:     ", fmt.Sprintf("%v", p.Processors()))
		describe(w, p)
	}
}

func field(w io.Writer, name, value string) {
	fmt.Fprint(w, color.Gray.Sprint(name))
	fmt.Fprintln(w, color.Magenta.Sprint(value))
}

func describe(w io.Writer, p *position.Position) {
	field(w, "Modes:       ", fmt.Sprintf("%v", p.Modes))
	field(w, "TDMA:        ", fmt.Sprintf("%v", p.TDMA))
	for proc, s := range p.ProcSched {
		if s != nil {
			field(w, fmt.Sprintf("P%-2d order:   ", proc), fmt.Sprintf("%v", s.Order()))
		}
	}
}
