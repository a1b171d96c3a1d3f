package scm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloomberg/go-testgroup"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucineia/RepositoryMiner/lib/model"
	"github.com/Lucineia/RepositoryMiner/lib/scm/scmtest"
)

func TestOpenMissingRepository(t *testing.T) {
	t.Parallel()

	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRepositoryNotFound))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.NotEmpty(t, e.Path)
}

func TestClosedSessionRejectsEverything(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	h := r.Write("a.txt", "a\n").Commit("first")

	s, err := Open(r.Dir)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, s.IsClosed())

	_, err = s.ListReferences()
	assert.True(t, errors.Is(err, ErrSessionClosed))

	_, err = s.ListCommits(context.Background())
	assert.True(t, errors.Is(err, ErrSessionClosed))

	_, err = s.ListCommitIDs(&model.Reference{Name: "master", Type: model.BranchReference})
	assert.True(t, errors.Is(err, ErrSessionClosed))

	_, err = s.Commit(context.Background(), h.String())
	assert.True(t, errors.Is(err, ErrSessionClosed))

	err = s.Checkout(h.String())
	assert.True(t, errors.Is(err, ErrSessionClosed))
}

func TestFailedCheckoutClosesSession(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	r.Write("a.txt", "a\n").Commit("first")

	s, err := Open(r.Dir)
	require.NoError(t, err)

	err = s.Checkout("0123456789012345678901234567890123456789")
	assert.True(t, errors.Is(err, ErrCheckout))
	assert.True(t, s.IsClosed())

	_, err = s.ListReferences()
	assert.True(t, errors.Is(err, ErrSessionClosed))
}

func TestHistory(t *testing.T) {
	testgroup.RunInParallel(t, &HistoryTests{})
}

type HistoryTests struct {
}

type historyFixture struct {
	repo    *scmtest.Repo
	session *Session
	base    string
	main    string
	side    string
	merge   string
}

func (g *HistoryTests) fixture(t *testgroup.T) *historyFixture {
	r := scmtest.NewRepo(t.T)

	base := r.Write("a.txt", "1\n2\n").Commit("base")
	main := r.Write("a.txt", "1\n2\n3\n").Commit("main")
	side := r.Branch("side", base).Write("b.txt", "b\n").Commit("side")
	merge := r.Switch("master").Write("b.txt", "b\n").Commit("merge", main, side)

	r.Tag("v1", base, true)
	r.Tag("light", main, false)

	s, err := Open(r.Dir)
	t.Require.NoError(err)
	t.Cleanup(func() { _ = s.Close() })

	return &historyFixture{
		repo:    r,
		session: s,
		base:    base.String(),
		main:    main.String(),
		side:    side.String(),
		merge:   merge.String(),
	}
}

func (g *HistoryTests) ReferencesListBranchesThenTags(t *testgroup.T) {
	f := g.fixture(t)

	refs, err := f.session.ListReferences()
	t.Require.NoError(err)

	t.Equal([]string{"refs/heads/master", "refs/heads/side", "refs/tags/light", "refs/tags/v1"},
		lo.Map(refs, func(r *model.Reference, _ int) string { return r.Path }))
	t.Equal([]model.ReferenceType{model.BranchReference, model.BranchReference, model.TagReference, model.TagReference},
		lo.Map(refs, func(r *model.Reference, _ int) model.ReferenceType { return r.Type }))
	t.Equal("master", refs[0].Name)
}

func (g *HistoryTests) ListCommitsHasAllCommits(t *testgroup.T) {
	f := g.fixture(t)

	commits, err := f.session.ListCommits(context.Background())
	t.Require.NoError(err)

	ids := lo.Map(commits, func(c *model.Commit, _ int) string { return c.ID })
	t.ElementsMatch([]string{f.base, f.main, f.side, f.merge}, ids)

	byID := lo.KeyBy(commits, func(c *model.Commit) string { return c.ID })

	merge := byID[f.merge]
	t.True(merge.IsMerge())
	t.Equal([]string{f.main, f.side}, merge.Parents)
	t.NotNil(merge.Changes)
	t.Empty(merge.Changes)

	main := byID[f.main]
	t.Equal("main", main.Message)
	t.Equal("Ana Dev", main.Author.Name)
	t.Equal("ana@example.com", main.Committer.Email)
	t.Require.Len(main.Changes, 1)
	t.Equal(model.ChangeModify, main.Changes[0].Type)
	t.Equal(1, main.Changes[0].LinesAdded)

	base := byID[f.base]
	t.Empty(base.Parents)
	t.Require.Len(base.Changes, 1)
	t.Equal(model.ChangeAdd, base.Changes[0].Type)
	t.Equal(2, base.Changes[0].LinesAdded)
}

func (g *HistoryTests) CommitIDsOfBranch(t *testgroup.T) {
	f := g.fixture(t)

	ids, err := f.session.ListCommitIDs(&model.Reference{Name: "side", Path: "refs/heads/side", Type: model.BranchReference})
	t.Require.NoError(err)

	t.Equal([]string{f.side, f.base}, ids)
}

func (g *HistoryTests) CommitIDsOfAnnotatedTagArePeeled(t *testgroup.T) {
	f := g.fixture(t)

	ids, err := f.session.ListCommitIDs(&model.Reference{Name: "v1", Path: "refs/tags/v1", Type: model.TagReference})
	t.Require.NoError(err)

	t.Equal([]string{f.base}, ids)
}

func (g *HistoryTests) CommitIDsOfLightweightTag(t *testgroup.T) {
	f := g.fixture(t)

	ids, err := f.session.ListCommitIDs(&model.Reference{Name: "light", Type: model.TagReference})
	t.Require.NoError(err)

	t.Equal([]string{f.main, f.base}, ids)
}

func (g *HistoryTests) CommitIDsOfUnknownReference(t *testgroup.T) {
	f := g.fixture(t)

	ids, err := f.session.ListCommitIDs(&model.Reference{Name: "nope", Path: "refs/heads/nope", Type: model.BranchReference})
	t.Require.NoError(err)

	t.NotNil(ids)
	t.Empty(ids)
	t.False(f.session.IsClosed())
}

func (g *HistoryTests) SingleCommit(t *testgroup.T) {
	f := g.fixture(t)

	c, err := f.session.Commit(context.Background(), f.side)
	t.Require.NoError(err)

	t.Equal(f.side, c.ID)
	t.Equal([]string{f.base}, c.Parents)
	t.Require.Len(c.Changes, 1)
	t.Equal("b.txt", c.Changes[0].Path)
}

func (g *HistoryTests) CheckoutTwiceWithStaleLock(t *testgroup.T) {
	f := g.fixture(t)

	t.Require.NoError(f.session.Checkout(f.base))
	content, err := os.ReadFile(filepath.Join(f.repo.Dir, "a.txt"))
	t.Require.NoError(err)
	t.Equal("1\n2\n", string(content))

	lock := filepath.Join(f.repo.Dir, ".git", "index.lock")
	t.Require.NoError(os.WriteFile(lock, []byte{}, 0o644))

	t.Require.NoError(f.session.Checkout(f.main))
	content, err = os.ReadFile(filepath.Join(f.repo.Dir, "a.txt"))
	t.Require.NoError(err)
	t.Equal("1\n2\n3\n", string(content))

	_, err = os.Stat(lock)
	t.True(os.IsNotExist(err))
}

func (g *HistoryTests) CheckoutDiscardsLocalChanges(t *testgroup.T) {
	f := g.fixture(t)

	path := filepath.Join(f.repo.Dir, "a.txt")
	t.Require.NoError(os.WriteFile(path, []byte("dirty\n"), 0o644))

	t.Require.NoError(f.session.Checkout(f.main))

	content, err := os.ReadFile(path)
	t.Require.NoError(err)
	t.Equal("1\n2\n3\n", string(content))
}

func TestVerifyChurn(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	r.Write("a.txt", "1\n2\n3\n").Commit("first")
	h := r.Write("a.txt", "1\ntwo\n3\n4\n").Commit("second")

	s, err := Open(r.Dir)
	require.NoError(t, err)
	defer s.Close()

	commit, err := s.Commit(context.Background(), h.String())
	require.NoError(t, err)

	mismatches, err := s.VerifyChurn(context.Background(), commit)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	commit.Changes[0].LinesAdded = 5
	mismatches, err = s.VerifyChurn(context.Background(), commit)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, "a.txt", mismatches[0].Path)
}
