package scm

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Checkout forces the worktree to the commit, discarding local changes. A stale index lock left by
// a crashed git process is removed first.
func (s *Session) Checkout(id string) error {
	h, err := s.acquire()
	defer s.mutex.Unlock()
	if err != nil {
		return err
	}

	lock := filepath.Join(s.path, ".git", "index.lock")
	if _, err := os.Stat(lock); err == nil {
		err = os.Remove(lock)
		if err != nil {
			return s.fail(newError(ErrCheckout, s.path, id, err))
		}
	}

	commit, err := resolveCommit(h, id)
	if err != nil {
		return s.fail(newError(ErrCheckout, s.path, id, err))
	}

	err = h.worktree.Checkout(&git.CheckoutOptions{
		Hash:  commit.Hash,
		Force: true,
	})
	if err != nil {
		return s.fail(newError(ErrCheckout, s.path, id, err))
	}

	return nil
}
