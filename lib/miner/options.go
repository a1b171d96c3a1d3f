package miner

import (
	"io"

	"github.com/Lucineia/RepositoryMiner/lib/churn"
	"github.com/Lucineia/RepositoryMiner/lib/smells"
)

type Options struct {
	// Refs are glob patterns matched against the reference name and path. Empty selects all.
	Refs []string
	// Commits, when set, replaces the commits found from the references.
	Commits []string

	// Include and Exclude are doublestar patterns over the repository relative path.
	Include []string
	Exclude []string
	// NoGitignore analyzes files even when .gitignore excludes them.
	NoGitignore bool

	Churn  churn.Options
	Smells smells.Options

	Workers int
	// Retries is the number of extra attempts for a failed commit. Negative disables retries.
	Retries  int
	FailFast bool

	// VerifyChurn cross-checks the line counts of every commit with an independent diff.
	VerifyChurn bool
	// MaxCommits limits the number of analyzed commits, newest first. Zero means no limit.
	MaxCommits int

	// Progress receives the progress bar. Nil hides it.
	Progress io.Writer
}

func DefaultOptions() Options {
	return Options{
		Churn:   churn.DefaultOptions(),
		Retries: 1,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()

	if o.Churn.BinaryThreshold == 0 {
		o.Churn.BinaryThreshold = d.Churn.BinaryThreshold
	}
	if o.Churn.RenameScore == 0 {
		o.Churn.RenameScore = d.Churn.RenameScore
	}

	switch {
	case o.Retries == 0:
		o.Retries = d.Retries
	case o.Retries < 0:
		o.Retries = 0
	}

	if o.Progress == nil {
		o.Progress = io.Discard
	}

	return o
}
