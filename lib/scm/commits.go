package scm

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/Lucineia/RepositoryMiner/lib/churn"
	"github.com/Lucineia/RepositoryMiner/lib/model"
)

// ListCommits returns every commit reachable from any reference, newest first, with its changes.
func (s *Session) ListCommits(ctx context.Context) ([]*model.Commit, error) {
	h, err := s.acquire()
	defer s.mutex.Unlock()
	if err != nil {
		return nil, err
	}

	iter, err := h.repo.Log(&git.LogOptions{
		All:   true,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, s.fail(newError(ErrHistoryRead, s.path, "", err))
	}
	defer iter.Close()

	result := make([]*model.Commit, 0)
	err = iter.ForEach(func(gitCommit *object.Commit) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		commit, err := s.toModel(ctx, gitCommit)
		if err != nil {
			return err
		}

		result = append(result, commit)
		return nil
	})
	if err != nil {
		return nil, s.fail(asError(ErrHistoryRead, s.path, "", err))
	}

	return result, nil
}

// ListCommitIDs returns the IDs of the commits reachable from ref, newest first.
// Tags are peeled to the commit they point to. An unknown reference has no commits.
func (s *Session) ListCommitIDs(ref *model.Reference) ([]string, error) {
	h, err := s.acquire()
	defer s.mutex.Unlock()
	if err != nil {
		return nil, err
	}

	from, err := s.resolveReference(h, ref)
	if err != nil {
		return nil, s.fail(newError(ErrHistoryRead, s.path, "", err))
	}
	if from.IsZero() {
		return []string{}, nil
	}

	iter, err := h.repo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, s.fail(newError(ErrHistoryRead, s.path, "", err))
	}
	defer iter.Close()

	result := make([]string, 0)
	err = iter.ForEach(func(gitCommit *object.Commit) error {
		result = append(result, gitCommit.Hash.String())
		return nil
	})
	if err != nil {
		return nil, s.fail(newError(ErrHistoryRead, s.path, "", err))
	}

	return result, nil
}

// Commit reads a single commit, with its changes.
func (s *Session) Commit(ctx context.Context, id string) (*model.Commit, error) {
	h, err := s.acquire()
	defer s.mutex.Unlock()
	if err != nil {
		return nil, err
	}

	gitCommit, err := resolveCommit(h, id)
	if err != nil {
		return nil, s.fail(newError(ErrHistoryRead, s.path, id, err))
	}

	commit, err := s.toModel(ctx, gitCommit)
	if err != nil {
		return nil, s.fail(asError(ErrHistoryRead, s.path, id, err))
	}

	return commit, nil
}

// VerifyChurn cross-checks the line counts of commit against an independent line diff.
func (s *Session) VerifyChurn(ctx context.Context, commit *model.Commit) ([]churn.Mismatch, error) {
	h, err := s.acquire()
	defer s.mutex.Unlock()
	if err != nil {
		return nil, err
	}

	gitCommit, err := resolveCommit(h, commit.ID)
	if err != nil {
		return nil, s.fail(newError(ErrHistoryRead, s.path, commit.ID, err))
	}

	result, err := s.churn.Verify(ctx, gitCommit, commit.Changes)
	if err != nil {
		return nil, s.fail(newError(ErrDiffComputation, s.path, commit.ID, err))
	}

	return result, nil
}

func (s *Session) resolveReference(h *handles, ref *model.Reference) (plumbing.Hash, error) {
	name := ref.Path
	if name == "" {
		name = lo.Ternary(ref.Type == model.TagReference, "refs/tags/", "refs/heads/") + ref.Name
	}

	gitRef, err := h.repo.Reference(plumbing.ReferenceName(name), true)
	if err == plumbing.ErrReferenceNotFound {
		return plumbing.ZeroHash, nil
	} else if err != nil {
		return plumbing.ZeroHash, err
	}

	hash := gitRef.Hash()
	if ref.Type != model.TagReference {
		return hash, nil
	}

	tag, err := h.repo.TagObject(hash)
	switch err {
	case nil:
		commit, err := tag.Commit()
		if err != nil {
			return plumbing.ZeroHash, errors.Wrapf(err, "error peeling tag %v", ref.Name)
		}
		return commit.Hash, nil

	case plumbing.ErrObjectNotFound:
		// Lightweight tag
		return hash, nil

	default:
		return plumbing.ZeroHash, err
	}
}

func resolveCommit(h *handles, id string) (*object.Commit, error) {
	hash, err := h.repo.ResolveRevision(plumbing.Revision(id))
	if err != nil {
		return nil, err
	}

	return h.repo.CommitObject(*hash)
}

func (s *Session) toModel(ctx context.Context, gitCommit *object.Commit) (*model.Commit, error) {
	changes, err := s.churn.Changes(ctx, gitCommit)
	if err != nil {
		return nil, newError(ErrDiffComputation, s.path, gitCommit.Hash.String(), err)
	}

	return &model.Commit{
		ID:      gitCommit.Hash.String(),
		Message: gitCommit.Message,
		Author: model.PersonIdent{
			Name:  gitCommit.Author.Name,
			Email: gitCommit.Author.Email,
			When:  gitCommit.Author.When,
		},
		Committer: model.PersonIdent{
			Name:  gitCommit.Committer.Name,
			Email: gitCommit.Committer.Email,
			When:  gitCommit.Committer.When,
		},
		Parents: lo.Map(gitCommit.ParentHashes, func(h plumbing.Hash, _ int) string { return h.String() }),
		Changes: changes,
	}, nil
}

// asError keeps errors that already carry a kind, and wraps the others with kind.
func asError(kind error, path string, commit string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(kind, path, commit, err)
}
