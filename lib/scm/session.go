package scm

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/pkg/errors"

	"github.com/Lucineia/RepositoryMiner/lib/churn"
)

type Options struct {
	Churn churn.Options
}

// Session is an open repository. All operations are serialized, and any failure closes the session.
type Session struct {
	mutex   sync.Mutex
	path    string
	handles *handles
	churn   *churn.Analyzer
}

type handles struct {
	repo     *git.Repository
	worktree *git.Worktree
}

func (h *handles) close() error {
	if closer, ok := h.repo.Storer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func Open(path string, opts ...Options) (*Session, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return nil, newError(ErrRepositoryIO, path, "", err)
	}

	_, err = os.Stat(filepath.Join(path, ".git"))
	if os.IsNotExist(err) {
		return nil, newError(ErrRepositoryNotFound, path, "", err)
	} else if err != nil {
		return nil, newError(ErrRepositoryIO, path, "", err)
	}

	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, newError(ErrRepositoryNotFound, path, "", err)
	} else if err != nil {
		return nil, newError(ErrRepositoryIO, path, "", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		h := &handles{repo: repo}
		_ = h.close()
		return nil, newError(ErrRepositoryIO, path, "", err)
	}

	return &Session{
		path: path,
		handles: &handles{
			repo:     repo,
			worktree: worktree,
		},
		churn: churn.NewAnalyzer(o.Churn),
	}, nil
}

func (s *Session) Path() string {
	return s.path
}

func (s *Session) IsClosed() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.handles == nil
}

// Close releases the repository handles. Closing an already closed session does nothing.
func (s *Session) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.close()
}

func (s *Session) close() error {
	if s.handles == nil {
		return nil
	}

	err := s.handles.close()
	s.handles = nil

	if err != nil {
		return newError(ErrRepositoryIO, s.path, "", err)
	}
	return nil
}

// acquire locks the session and returns the open handles. The caller must call s.mutex.Unlock.
func (s *Session) acquire() (*handles, error) {
	s.mutex.Lock()

	if s.handles == nil {
		return nil, newError(ErrSessionClosed, s.path, "", nil)
	}

	return s.handles, nil
}

// fail closes the session and returns err. Must be called with the lock held.
func (s *Session) fail(err error) error {
	_ = s.close()
	return err
}
