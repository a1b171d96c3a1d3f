package churn

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"

	"github.com/Lucineia/RepositoryMiner/lib/linediff"
	"github.com/Lucineia/RepositoryMiner/lib/model"
)

// Mismatch is a change whose counted lines disagree with an independent line diff.
type Mismatch struct {
	Path     string
	Counted  int
	Expected int
}

// Verify recomputes the net line delta of every text change of commit and returns the ones that
// differ from LinesAdded - LinesRemoved.
func (a *Analyzer) Verify(ctx context.Context, commit *object.Commit, changes []*model.Change) ([]Mismatch, error) {
	result := make([]Mismatch, 0)

	if commit.NumParents() > 1 {
		return result, nil
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, errors.Wrap(err, "error reading commit tree")
	}

	var parentTree *object.Tree
	if commit.NumParents() == 1 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, errors.Wrap(err, "error reading parent commit")
		}

		parentTree, err = parent.Tree()
		if err != nil {
			return nil, errors.Wrap(err, "error reading parent tree")
		}
	}

	for _, c := range changes {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if c.Binary {
			continue
		}

		var before, after string

		switch c.Type {
		case model.ChangeAdd:
			after, err = fileContents(tree, c.Path)
		case model.ChangeDelete:
			before, err = fileContents(parentTree, c.Path)
		case model.ChangeMove, model.ChangeCopy:
			before, err = fileContents(parentTree, c.OldPath)
			if err == nil {
				after, err = fileContents(tree, c.Path)
			}
		default:
			before, err = fileContents(parentTree, c.Path)
			if err == nil {
				after, err = fileContents(tree, c.Path)
			}
		}
		if err != nil {
			return nil, errors.Wrapf(err, "error reading contents of %v", c.Path)
		}

		counted := c.LinesAdded - c.LinesRemoved
		expected := linediff.NetDelta(before, after)
		if counted != expected {
			result = append(result, Mismatch{
				Path:     c.Path,
				Counted:  counted,
				Expected: expected,
			})
		}
	}

	return result, nil
}

func fileContents(tree *object.Tree, path string) (string, error) {
	if tree == nil {
		return "", nil
	}

	file, err := tree.File(path)
	if err == object.ErrFileNotFound {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return file.Contents()
}
