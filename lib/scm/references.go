package scm

import (
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/Lucineia/RepositoryMiner/lib/model"
)

// ListReferences returns the local branches followed by the tags, each group sorted by path.
func (s *Session) ListReferences() ([]*model.Reference, error) {
	h, err := s.acquire()
	defer s.mutex.Unlock()
	if err != nil {
		return nil, err
	}

	branches, err := h.repo.Branches()
	if err != nil {
		return nil, s.fail(newError(ErrReferenceList, s.path, "", err))
	}

	result, err := collectReferences(branches, model.BranchReference)
	if err != nil {
		return nil, s.fail(newError(ErrReferenceList, s.path, "", err))
	}

	tags, err := h.repo.Tags()
	if err != nil {
		return nil, s.fail(newError(ErrReferenceList, s.path, "", err))
	}

	tagRefs, err := collectReferences(tags, model.TagReference)
	if err != nil {
		return nil, s.fail(newError(ErrReferenceList, s.path, "", err))
	}

	return append(result, tagRefs...), nil
}

func collectReferences(iter storer.ReferenceIter, t model.ReferenceType) ([]*model.Reference, error) {
	defer iter.Close()

	result := make([]*model.Reference, 0)
	err := iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name() == plumbing.HEAD {
			return nil
		}

		result = append(result, model.NewReference(ref.Name().String(), t))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result, nil
}
