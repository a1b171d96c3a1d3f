package churn

import (
	"context"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucineia/RepositoryMiner/lib/model"
	"github.com/Lucineia/RepositoryMiner/lib/scm/scmtest"
)

func changeByPath(t *testing.T, changes []*model.Change, path string) *model.Change {
	t.Helper()

	c, ok := lo.Find(changes, func(c *model.Change) bool { return c.Path == path })
	require.True(t, ok, "no change for %v", path)
	return c
}

func TestRootCommitAdds(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	h := r.Write("a.txt", "1\n2\n3\n").Write("dir/b.txt", "x\n").Commit("first")

	changes, err := NewAnalyzer().Changes(context.Background(), r.CommitObject(h))
	require.NoError(t, err)
	require.Len(t, changes, 2)

	a := changeByPath(t, changes, "a.txt")
	assert.Equal(t, model.ChangeAdd, a.Type)
	assert.Equal(t, 3, a.LinesAdded)
	assert.Equal(t, 0, a.LinesRemoved)
	assert.Empty(t, a.OldPath)

	b := changeByPath(t, changes, "dir/b.txt")
	assert.Equal(t, 1, b.LinesAdded)
}

func TestModifyAndDelete(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	r.Write("a.txt", "1\n2\n3\n").Write("gone.txt", "x\ny\n").Commit("first")
	h := r.Write("a.txt", "1\ntwo\n3\n4\n").Remove("gone.txt").Commit("second")

	changes, err := NewAnalyzer().Changes(context.Background(), r.CommitObject(h))
	require.NoError(t, err)
	require.Len(t, changes, 2)

	a := changeByPath(t, changes, "a.txt")
	assert.Equal(t, model.ChangeModify, a.Type)
	assert.Equal(t, 2, a.LinesAdded)
	assert.Equal(t, 1, a.LinesRemoved)

	gone := changeByPath(t, changes, "gone.txt")
	assert.Equal(t, model.ChangeDelete, gone.Type)
	assert.Equal(t, 0, gone.LinesAdded)
	assert.Equal(t, 2, gone.LinesRemoved)
}

func TestRenameIsMove(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	content := scmtest.Lines("line", 20)
	r.Write("old/Name.java", content).Commit("first")
	h := r.Move("old/Name.java", "new/Name.java").Commit("move")

	changes, err := NewAnalyzer().Changes(context.Background(), r.CommitObject(h))
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, model.ChangeMove, changes[0].Type)
	assert.Equal(t, "new/Name.java", changes[0].Path)
	assert.Equal(t, "old/Name.java", changes[0].OldPath)
	assert.Equal(t, 0, changes[0].LinesAdded)
	assert.Equal(t, 0, changes[0].LinesRemoved)
}

func TestBinaryChangesHaveNoLines(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	r.WriteBytes("img.bin", []byte{0x89, 'P', 'N', 'G', 0, 0, 0, 1}).Commit("first")
	h := r.WriteBytes("img.bin", []byte{0x89, 'P', 'N', 'G', 0, 0, 0, 2, 0, 3}).Commit("second")

	changes, err := NewAnalyzer().Changes(context.Background(), r.CommitObject(h))
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.True(t, changes[0].Binary)
	assert.Equal(t, model.ChangeModify, changes[0].Type)
	assert.Equal(t, 0, changes[0].LinesAdded)
	assert.Equal(t, 0, changes[0].LinesRemoved)
}

func TestBigTextFilesAreCounted(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	big := strings.Repeat("0123456789\n", 300)
	r.Write("Big.java", big).Commit("first")
	h := r.Write("Big.java", big+"int a;\nint b;\n").Commit("second")

	analyzer := NewAnalyzer()
	commit := r.CommitObject(h)

	changes, err := analyzer.Changes(context.Background(), commit)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.False(t, changes[0].Binary)
	assert.Equal(t, 2, changes[0].LinesAdded)
	assert.Equal(t, 0, changes[0].LinesRemoved)

	mismatches, err := analyzer.Verify(context.Background(), commit, changes)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestBinaryThresholdLimitsTheSniffedBytes(t *testing.T) {
	t.Parallel()

	// The NUL byte is past the first 16 bytes
	content := append([]byte(strings.Repeat("x", 32)+"\n"), 0)

	r := scmtest.NewRepo(t)
	h := r.WriteBytes("late.dat", content).Commit("first")

	changes, err := NewAnalyzer(Options{BinaryThreshold: 16}).Changes(context.Background(), r.CommitObject(h))
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.False(t, changes[0].Binary)

	changes, err = NewAnalyzer().Changes(context.Background(), r.CommitObject(h))
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Binary)
}

func TestMergeHasNoChanges(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	base := r.Write("a.txt", "1\n").Commit("base")
	main := r.Write("a.txt", "1\n2\n").Commit("main")
	side := r.Branch("side", base).Write("b.txt", "x\n").Commit("side")
	merge := r.Switch("master").Write("b.txt", "x\n").Commit("merge", main, side)

	changes, err := NewAnalyzer().Changes(context.Background(), r.CommitObject(merge))
	require.NoError(t, err)
	assert.NotNil(t, changes)
	assert.Empty(t, changes)
}

func TestNetDeltaMatchesLineDiff(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	r.Write("a.txt", scmtest.Lines("a", 30)).Write("b.txt", "keep\n").Commit("first")
	h := r.
		Write("a.txt", scmtest.Lines("a", 10)+"new\n"+scmtest.Lines("z", 5)).
		Write("b.txt", "keep\nmore\nand more\n").
		Write("c.txt", "c\n").
		Commit("second")

	analyzer := NewAnalyzer()
	commit := r.CommitObject(h)

	changes, err := analyzer.Changes(context.Background(), commit)
	require.NoError(t, err)
	require.Len(t, changes, 3)

	mismatches, err := analyzer.Verify(context.Background(), commit, changes)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestVerifyReportsWrongCounts(t *testing.T) {
	t.Parallel()

	r := scmtest.NewRepo(t)
	h := r.Write("a.txt", "1\n2\n").Commit("first")

	analyzer := NewAnalyzer()
	commit := r.CommitObject(h)

	changes := []*model.Change{{Path: "a.txt", Type: model.ChangeAdd, LinesAdded: 5}}

	mismatches, err := analyzer.Verify(context.Background(), commit, changes)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, Mismatch{Path: "a.txt", Counted: 5, Expected: 2}, mismatches[0])
}

func TestCountUnifiedSkipsHeadersOnly(t *testing.T) {
	t.Parallel()

	patch := `diff --git a/x.sql b/x.sql
index 1111111..2222222 100644
--- a/x.sql
+++ b/x.sql
@@ -1 +1,2 @@
--- old comment
+++ new comment
+select 1;
diff --git a/y.txt b/y.txt
--- a/y.txt
+++ b/y.txt
@@ -3,2 +2,0 @@
-a
-b
\ No newline at end of file
`

	added, removed, err := CountUnified(strings.NewReader(patch))
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 3, removed)
}
