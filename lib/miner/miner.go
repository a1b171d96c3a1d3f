package miner

import (
	"context"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gertd/go-pluralize"
	"github.com/gobwas/glob"
	"github.com/oleiade/lane/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/consoles"
	"github.com/Lucineia/RepositoryMiner/lib/metrics"
	"github.com/Lucineia/RepositoryMiner/lib/model"
	"github.com/Lucineia/RepositoryMiner/lib/scm"
	"github.com/Lucineia/RepositoryMiner/lib/smells"
	"github.com/Lucineia/RepositoryMiner/lib/storages"
	"github.com/Lucineia/RepositoryMiner/lib/utils"
)

// Miner runs the whole pipeline over a repository: history, churn, metrics and smells.
type Miner struct {
	console   consoles.Console
	storage   storages.Storage
	providers map[string]ast.Provider
	opts      Options

	refs      []glob.Glob
	engine    *metrics.Engine
	detectors []smells.Detector
}

type Summary struct {
	RunID    string
	Commits  int
	Analyzed int
	Files    int
	Types    int
	Smells   int
	Failed   []*CommitError
}

func New(console consoles.Console, storage storages.Storage, providers []ast.Provider, opts Options) (*Miner, error) {
	opts = opts.withDefaults()

	refs, err := compileGlobs(opts.Refs)
	if err != nil {
		return nil, err
	}

	engine, err := metrics.NewEngine(metrics.DefaultRegistry())
	if err != nil {
		return nil, err
	}

	return &Miner{
		console:   console,
		storage:   storage,
		providers: lo.Associate(providers, func(p ast.Provider) (string, ast.Provider) { return p.Language(), p }),
		opts:      opts,
		refs:      refs,
		engine:    engine,
		detectors: smells.DefaultRegistry(opts.Smells).List(),
	}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	result := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid reference pattern: %v", p)
		}
		result = append(result, g)
	}
	return result, nil
}

// run holds the state of one call to Mine. The session is replaced when a failure closes it.
type run struct {
	path    string
	session *scm.Session
	summary *Summary
}

func (r *run) close() {
	if r.session != nil {
		_ = r.session.Close()
	}
}

func (m *Miner) reopen(r *run) error {
	if r.session != nil && !r.session.IsClosed() {
		return nil
	}

	m.console.Debugf("Reopening %v\n", r.path)

	session, err := scm.Open(r.path, scm.Options{Churn: m.opts.Churn})
	if err != nil {
		return err
	}

	r.session = session
	return nil
}

type unit struct {
	id       string
	attempts int
}

// Mine analyzes the repository at path and writes everything to the storage.
// Failures of single commits are retried and then reported in the summary, unless FailFast is set.
func (m *Miner) Mine(ctx context.Context, path string) (*Summary, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid path %v", path)
	}

	r := &run{
		path: path,
		summary: &Summary{
			RunID:  model.NewRunID(),
			Failed: make([]*CommitError, 0),
		},
	}
	defer r.close()

	m.console.PushPrefix("%v: ", filepath.Base(path))
	defer m.console.PopPrefix()

	err = m.reopen(r)
	if err != nil {
		return nil, err
	}

	refs, err := m.selectReferences(r)
	if err != nil {
		return nil, err
	}

	ids, err := m.selectCommits(r, refs)
	if err != nil {
		return nil, err
	}

	r.summary.Commits = len(ids)
	if len(ids) == 0 {
		m.console.Printf("Nothing to analyze\n")
		return r.summary, nil
	}

	finder, err := newSourceFinder(path, m.opts, lo.Keys(m.providers))
	if err != nil {
		return nil, err
	}

	m.console.Printf("Analyzing %v %v...\n", humanize.Comma(int64(len(ids))), plural("commit", len(ids)))

	bar := utils.NewProgressBarTo(m.opts.Progress, len(ids))
	defer bar.Finish()

	queue := lane.NewQueue(lo.Map(ids, func(id string, _ int) *unit { return &unit{id: id} })...)
	for queue.Size() > 0 {
		if ctx.Err() != nil {
			return r.summary, ctx.Err()
		}

		u, _ := queue.Dequeue()
		u.attempts++

		bar.Describe(shortID(u.id))

		records, err := m.mineCommit(ctx, r, finder, u.id)
		if err != nil {
			if ctx.Err() != nil {
				return r.summary, ctx.Err()
			}

			var cerr *CommitError
			if !errors.As(err, &cerr) {
				return r.summary, err
			}

			if m.opts.FailFast {
				return r.summary, cerr
			}

			if u.attempts <= m.opts.Retries {
				m.console.Warnf("%v, will retry\n", cerr)
				queue.Enqueue(u)
			} else {
				m.console.Errorf("%v\n", cerr)
				r.summary.Failed = append(r.summary.Failed, cerr)
				_ = bar.Add(1)
			}
			continue
		}

		err = m.storage.WriteAnalysis(records)
		if err != nil {
			return r.summary, errors.Wrapf(err, "error writing analysis of %v", u.id)
		}

		r.summary.Analyzed++
		r.summary.Files += len(records)
		for _, f := range records {
			r.summary.Types += len(f.Types)
			r.summary.Smells += f.CountSmells()
		}

		_ = bar.Add(1)
	}

	m.console.Printf("Analyzed %v %v: %v %v, %v %v and %v %v\n",
		humanize.Comma(int64(r.summary.Analyzed)), plural("commit", r.summary.Analyzed),
		humanize.Comma(int64(r.summary.Files)), plural("file", r.summary.Files),
		humanize.Comma(int64(r.summary.Types)), plural("type", r.summary.Types),
		humanize.Comma(int64(r.summary.Smells)), plural("smell", r.summary.Smells))

	return r.summary, nil
}

var pluralizer = pluralize.NewClient()

func plural(word string, count int) string {
	return pluralizer.Pluralize(word, count, false)
}

func (m *Miner) selectReferences(r *run) ([]*model.Reference, error) {
	refs, err := r.session.ListReferences()
	if err != nil {
		return nil, err
	}

	err = m.storage.WriteReferences(r.path, refs)
	if err != nil {
		return nil, errors.Wrap(err, "error writing references")
	}

	if len(m.refs) == 0 {
		return refs, nil
	}

	return lo.Filter(refs, func(ref *model.Reference, _ int) bool {
		return lo.SomeBy(m.refs, func(g glob.Glob) bool { return g.Match(ref.Name) || g.Match(ref.Path) })
	}), nil
}

// selectCommits returns the IDs of the commits to analyze, newest first.
func (m *Miner) selectCommits(r *run, refs []*model.Reference) ([]string, error) {
	ids := m.opts.Commits
	if len(ids) == 0 {
		for _, ref := range refs {
			refIDs, err := r.session.ListCommitIDs(ref)
			if err != nil {
				return nil, err
			}
			ids = append(ids, refIDs...)
		}
	}

	ids = lo.Uniq(ids)
	if m.opts.MaxCommits > 0 && len(ids) > m.opts.MaxCommits {
		ids = ids[:m.opts.MaxCommits]
	}

	return ids, nil
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}
