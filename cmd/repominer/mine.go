package main

import (
	gocontext "context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"

	"github.com/Lucineia/RepositoryMiner/lib/churn"
	"github.com/Lucineia/RepositoryMiner/lib/miner"
	"github.com/Lucineia/RepositoryMiner/lib/smells"
)

type MineCmd struct {
	Repo string `arg:"" help:"Path of the repository." type:"existingdir"`

	Refs    []string `help:"Only analyze commits reachable from references matching these globs."`
	Commits []string `help:"Analyze only these commits."`
	Include []string `help:"Only analyze files matching these globs."`
	Exclude []string `help:"Do not analyze files matching these globs."`

	Gitignore   bool `default:"true" negatable:"" help:"Respect .gitignore file when finding source files."`
	Workers     int  `help:"Number of files analyzed in parallel."`
	Retries     int  `help:"Extra attempts for a failed commit. Negative disables retries."`
	FailFast    bool `help:"Stop at the first failed commit."`
	VerifyChurn bool `help:"Cross-check the churn of every commit with an independent line diff."`
	MaxCommits  int  `help:"Analyze at most this many commits, newest first."`
	Progress    bool `default:"true" negatable:"" help:"Show a progress bar."`

	BinaryThreshold int64 `help:"Bytes searched for a NUL byte to tell binary files apart (default 2048)."`
	RenameScore     uint  `help:"Similarity percentage needed to detect a rename (default 60)."`

	BrainMethodMLOC       int     `help:"Brain method: lines of code threshold (default 65, negative for 0)."`
	BrainMethodCYCLO      float64 `help:"Brain method: cyclomatic complexity threshold (default 10, negative for 0)."`
	BrainMethodMaxNesting int     `help:"Brain method: nesting threshold (default 5, negative for 0)."`
	BrainMethodNOAV       int     `help:"Brain method: accessed variables threshold (default 5, negative for 0)."`
	ComplexMethodCYCLO    float64 `help:"Complex method: cyclomatic complexity threshold (default 10, negative for 0)."`
	LongMethodMLOC        int     `help:"Long method: lines of code threshold (default 30, negative for 0)."`
}

func (c *MineCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	opts := miner.Options{
		Refs:        c.Refs,
		Commits:     c.Commits,
		Include:     c.Include,
		Exclude:     c.Exclude,
		NoGitignore: !c.Gitignore,
		Churn: churn.Options{
			BinaryThreshold: c.BinaryThreshold,
			RenameScore:     c.RenameScore,
		},
		Smells: smells.Options{
			BrainMethod: smells.BrainMethodOptions{
				MLOC:       c.BrainMethodMLOC,
				CYCLO:      c.BrainMethodCYCLO,
				MaxNesting: c.BrainMethodMaxNesting,
				NOAV:       c.BrainMethodNOAV,
			},
			ComplexMethod: smells.ComplexMethodOptions{CYCLO: c.ComplexMethodCYCLO},
			LongMethod:    smells.LongMethodOptions{MLOC: c.LongMethodMLOC},
		},
		Workers:     c.Workers,
		Retries:     c.Retries,
		FailFast:    c.FailFast,
		VerifyChurn: c.VerifyChurn,
		MaxCommits:  c.MaxCommits,
	}
	if c.Progress {
		opts.Progress = os.Stderr
	}

	bg, stop := signal.NotifyContext(gocontext.Background(), os.Interrupt)
	defer stop()

	summary, err := ws.Mine(bg, c.Repo, opts)
	if summary != nil {
		fmt.Printf("Run %v: %v of %v commits analyzed, %v files, %v types, %v smells\n",
			summary.RunID,
			humanize.Comma(int64(summary.Analyzed)), humanize.Comma(int64(summary.Commits)),
			humanize.Comma(int64(summary.Files)), humanize.Comma(int64(summary.Types)),
			humanize.Comma(int64(summary.Smells)))

		for _, f := range summary.Failed {
			fmt.Printf("Failed: %v\n", f)
		}
	}

	return err
}
