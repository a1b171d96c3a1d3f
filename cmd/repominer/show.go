package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/Lucineia/RepositoryMiner/lib/model"
)

type ShowCmd struct {
	Commit string `arg:"" help:"Commit ID, or a prefix of it."`
	Smells bool   `short:"s" help:"Only show types with smells."`
	Simple bool   `help:"Only show file and type names."`
}

func (c *ShowCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	files, err := ws.LoadAnalysis(c.Commit)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no analysis found for commit %v", c.Commit)
	}

	commit := ""
	for _, f := range files {
		if f.Commit != commit {
			commit = f.Commit
			fmt.Printf("Commit %v (%v, run %v)\n", f.Commit, humanize.Time(f.CommitDate), f.RunID)
		}

		c.printFile(f)
	}

	return nil
}

func (c *ShowCmd) printFile(f *model.FileAnalysis) {
	types := f.Types
	if c.Smells {
		types = lo.Filter(types, func(t *model.TypeAnalysis, _ int) bool { return len(t.Smells) > 0 })
		if len(types) == 0 {
			return
		}
	}

	if c.Simple {
		fmt.Printf("   %v\n", f.Path)
	} else {
		fmt.Printf("   %v [%v, %v code, %v comment, %v blank lines]\n", f.Path, f.Language,
			humanize.Comma(int64(f.Lines.Code)), humanize.Comma(int64(f.Lines.Comments)), humanize.Comma(int64(f.Lines.Blanks)))
	}

	for _, t := range types {
		if c.Simple {
			fmt.Printf("      %v\n", t.Name)
			continue
		}

		fmt.Printf("      %v %v %v\n", strings.ToLower(t.Archetype), t.Name, formatMetrics(t.Metrics))

		for _, v := range t.Smells {
			fmt.Printf("         %v: %v\n", v.Smell, strings.Join(v.Members, ", "))
		}
	}
}

func formatMetrics(metrics map[string]float64) string {
	keys := lo.Keys(metrics)
	sort.Strings(keys)

	return "[" + strings.Join(lo.Map(keys, func(k string, _ int) string {
		return k + "=" + humanize.FormatFloat("#.##", metrics[k])
	}), " ") + "]"
}
