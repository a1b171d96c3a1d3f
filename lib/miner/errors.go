package miner

import (
	"fmt"
)

type Stage string

const (
	StageHistory  Stage = "history"
	StageChurn    Stage = "churn"
	StageCheckout Stage = "checkout"
	StageSources  Stage = "sources"
	StageParse    Stage = "parse"
	StageMetrics  Stage = "metrics"
	StageSmells   Stage = "smells"
)

// CommitError is the failure of one unit of work.
type CommitError struct {
	Commit string
	Stage  Stage
	Path   string
	Err    error
}

func newCommitError(commit string, stage Stage, path string, err error) *CommitError {
	return &CommitError{
		Commit: commit,
		Stage:  stage,
		Path:   path,
		Err:    err,
	}
}

func (e *CommitError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v: %v of %v failed: %v", e.Commit, e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %v failed: %v", e.Commit, e.Stage, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
