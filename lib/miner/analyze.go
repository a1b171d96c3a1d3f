package miner

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/model"
	"github.com/Lucineia/RepositoryMiner/lib/scm"
	"github.com/Lucineia/RepositoryMiner/lib/smells"
	"github.com/Lucineia/RepositoryMiner/lib/utils"
)

// mineCommit is one unit of work: it reads the commit with its churn, stores it and analyzes its tree.
// Failures that belong to the commit are returned as *CommitError, anything else stops the run.
func (m *Miner) mineCommit(ctx context.Context, r *run, finder *sourceFinder, id string) ([]*model.FileAnalysis, error) {
	commit, err := m.readCommit(ctx, r, id)
	if err != nil {
		return nil, err
	}

	err = m.storage.WriteCommits(r.path, []*model.Commit{commit})
	if err != nil {
		return nil, errors.Wrapf(err, "error writing commit %v", id)
	}

	return m.analyzeCommit(ctx, r, finder, commit)
}

func (m *Miner) readCommit(ctx context.Context, r *run, id string) (*model.Commit, error) {
	err := m.reopen(r)
	if err != nil {
		return nil, newCommitError(id, StageHistory, "", err)
	}

	commit, err := r.session.Commit(ctx, id)
	if err != nil {
		stage := lo.Ternary(errors.Is(err, scm.ErrDiffComputation), StageChurn, StageHistory)
		return nil, newCommitError(id, stage, "", err)
	}

	if !m.opts.VerifyChurn {
		return commit, nil
	}

	mismatches, err := r.session.VerifyChurn(ctx, commit)
	if err != nil {
		return nil, newCommitError(id, StageChurn, "", err)
	}

	for _, mm := range mismatches {
		m.console.Warnf("%v: %v counted a delta of %v lines but the file changed by %v\n",
			commit.ShortID(), mm.Path, mm.Counted, mm.Expected)
	}

	return commit, nil
}

// analyzeCommit runs the pipeline for one commit. Nothing is returned unless every file succeeds.
func (m *Miner) analyzeCommit(ctx context.Context, r *run, finder *sourceFinder, commit *model.Commit) ([]*model.FileAnalysis, error) {
	err := m.reopen(r)
	if err != nil {
		return nil, newCommitError(commit.ID, StageCheckout, "", err)
	}

	err = r.session.Checkout(commit.ID)
	if err != nil {
		return nil, newCommitError(commit.ID, StageCheckout, "", err)
	}

	files, err := finder.Find()
	if err != nil {
		return nil, newCommitError(commit.ID, StageSources, "", err)
	}

	m.console.Debugf("%v: %v source files\n", commit.ShortID(), len(files))

	return utils.ParallelFor(files, func(file *sourceFile) (*model.FileAnalysis, error) {
		return m.analyzeFile(ctx, commit, r.summary.RunID, file)
	}, utils.ParallelOptions{Routines: m.opts.Workers})
}

func (m *Miner) analyzeFile(ctx context.Context, commit *model.Commit, runID string, file *sourceFile) (*model.FileAnalysis, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	m.console.Debugf("%v: parsing %v\n", commit.ShortID(), utils.TruncateFilename(file.Path))

	provider, ok := m.providers[file.Language]
	if !ok {
		return nil, newCommitError(commit.ID, StageParse, file.Path, errors.Errorf("no parser for %v", file.Language))
	}

	a, err := provider.Parse(ctx, file.Path, file.Content)
	if err != nil {
		return nil, newCommitError(commit.ID, StageParse, file.Path, err)
	}

	err = m.engine.Calculate(a)
	if err != nil {
		return nil, newCommitError(commit.ID, StageMetrics, file.Path, err)
	}

	verdicts, err := smells.Detect(ctx, a, m.detectors...)
	if err != nil {
		return nil, newCommitError(commit.ID, StageSmells, file.Path, err)
	}

	result := model.NewFileAnalysis(runID, commit, file.Path)
	result.Language = file.Language
	result.Lines = file.Lines
	result.Types = lo.Map(verdicts, func(v *smells.TypeVerdicts, _ int) *model.TypeAnalysis {
		return toTypeAnalysis(v)
	})

	return result, nil
}

func toTypeAnalysis(v *smells.TypeVerdicts) *model.TypeAnalysis {
	methods := map[string]map[string]float64{}
	for _, m := range v.Type.Methods {
		methods[methodKey(m)] = m.Metrics.Clone()
	}

	return &model.TypeAnalysis{
		Name:      v.Type.Name,
		Archetype: v.Type.Archetype.String(),
		Metrics:   v.Type.Metrics.Clone(),
		Methods:   methods,
		Smells:    v.Verdicts,
	}
}

// methodKey tells overloads apart by their parameter names.
func methodKey(m *ast.Method) string {
	return m.Name + "(" + strings.Join(m.Parameters, ",") + ")"
}
