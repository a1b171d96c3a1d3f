// Package scmtest builds small git repositories for tests.
package scmtest

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

type Repo struct {
	t        testing.TB
	Dir      string
	Git      *git.Repository
	worktree *git.Worktree
	when     time.Time
}

func NewRepo(t testing.TB) *Repo {
	t.Helper()

	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &Repo{
		t:        t,
		Dir:      dir,
		Git:      repo,
		worktree: wt,
		when:     time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (r *Repo) Write(path string, content string) *Repo {
	r.t.Helper()

	fullPath := filepath.Join(r.Dir, filepath.FromSlash(path))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(r.t, os.WriteFile(fullPath, []byte(content), 0o644))

	_, err := r.worktree.Add(path)
	require.NoError(r.t, err)

	return r
}

func (r *Repo) WriteBytes(path string, content []byte) *Repo {
	r.t.Helper()

	fullPath := filepath.Join(r.Dir, filepath.FromSlash(path))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(r.t, os.WriteFile(fullPath, content, 0o644))

	_, err := r.worktree.Add(path)
	require.NoError(r.t, err)

	return r
}

func (r *Repo) Remove(path string) *Repo {
	r.t.Helper()

	_, err := r.worktree.Remove(path)
	require.NoError(r.t, err)

	return r
}

func (r *Repo) Move(from, to string) *Repo {
	r.t.Helper()

	_, err := r.worktree.Move(from, to)
	require.NoError(r.t, err)

	return r
}

func (r *Repo) Commit(message string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()

	r.when = r.when.Add(time.Minute)
	sig := &object.Signature{
		Name:  "Ana Dev",
		Email: "ana@example.com",
		When:  r.when,
	}

	opts := &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	}
	if len(parents) > 0 {
		opts.Parents = parents
	}

	hash, err := r.worktree.Commit(message, opts)
	require.NoError(r.t, err)

	return hash
}

func (r *Repo) Head() plumbing.Hash {
	r.t.Helper()

	head, err := r.Git.Head()
	require.NoError(r.t, err)

	return head.Hash()
}

// Branch creates the branch at from and checks it out.
func (r *Repo) Branch(name string, from plumbing.Hash) *Repo {
	r.t.Helper()

	err := r.worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Hash:   from,
		Create: true,
		Force:  true,
	})
	require.NoError(r.t, err)

	return r
}

func (r *Repo) Switch(name string) *Repo {
	r.t.Helper()

	err := r.worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Force:  true,
	})
	require.NoError(r.t, err)

	return r
}

func (r *Repo) Tag(name string, hash plumbing.Hash, annotated bool) *Repo {
	r.t.Helper()

	var opts *git.CreateTagOptions
	if annotated {
		opts = &git.CreateTagOptions{
			Tagger: &object.Signature{
				Name:  "Ana Dev",
				Email: "ana@example.com",
				When:  r.when,
			},
			Message: "release " + name,
		}
	}

	_, err := r.Git.CreateTag(name, hash, opts)
	require.NoError(r.t, err)

	return r
}

func (r *Repo) CommitObject(hash plumbing.Hash) *object.Commit {
	r.t.Helper()

	c, err := r.Git.CommitObject(hash)
	require.NoError(r.t, err)

	return c
}

// DropBlob deletes the loose object that stores content, leaving the history unreadable where it is used.
func (r *Repo) DropBlob(content string) *Repo {
	r.t.Helper()

	hash := plumbing.ComputeHash(plumbing.BlobObject, []byte(content)).String()
	require.NoError(r.t, os.Remove(filepath.Join(r.Dir, ".git", "objects", hash[:2], hash[2:])))

	return r
}

// Lines builds the contents of a file with n numbered lines.
func Lines(prefix string, n int) string {
	result := ""
	for i := 0; i < n; i++ {
		result += prefix + " " + string(rune('a'+i%26)) + "\n"
	}
	return result
}

// Clone copies the repository, with its working tree, to a new directory.
func Clone(t testing.TB, r *Repo) *Repo {
	t.Helper()

	dir := t.TempDir()

	err := filepath.WalkDir(r.Dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(r.Dir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dir, rel)

		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, content, 0o644)
	})
	require.NoError(t, err)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &Repo{
		t:        t,
		Dir:      dir,
		Git:      repo,
		worktree: wt,
		when:     r.when,
	}
}
