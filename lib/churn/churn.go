package churn

import (
	"bytes"
	"context"
	"io"

	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/binary"
	"github.com/go-git/go-git/v5/utils/ioutil"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	"github.com/pkg/errors"

	"github.com/Lucineia/RepositoryMiner/lib/model"
)

type Options struct {
	// BinaryThreshold is how many bytes from the start of each blob are searched for a NUL byte
	// to tell binary content apart. Zero or less searches the default 8000 bytes.
	BinaryThreshold int64
	RenameScore     uint
}

func DefaultOptions() Options {
	return Options{
		BinaryThreshold: 2048,
		RenameScore:     60,
	}
}

type Analyzer struct {
	opts Options
}

func NewAnalyzer(opts ...Options) *Analyzer {
	o := DefaultOptions()
	for _, oi := range opts {
		if oi.BinaryThreshold != 0 {
			o.BinaryThreshold = oi.BinaryThreshold
		}
		if oi.RenameScore != 0 {
			o.RenameScore = oi.RenameScore
		}
	}

	return &Analyzer{opts: o}
}

func (a *Analyzer) Options() Options {
	return a.opts
}

// Changes computes the files changed by commit against its first parent.
// Merge commits have no changes: churn is not attributed to merges.
func (a *Analyzer) Changes(ctx context.Context, commit *object.Commit) ([]*model.Change, error) {
	if commit.NumParents() > 1 {
		return []*model.Change{}, nil
	}

	gitChanges, err := a.diffTree(ctx, commit)
	if err != nil {
		return nil, err
	}

	result := make([]*model.Change, 0, len(gitChanges))
	for _, gitChange := range gitChanges {
		change, err := a.processChange(ctx, gitChange)
		if err != nil {
			return nil, errors.Wrapf(err, "error processing %v", changeName(gitChange))
		}

		if change == nil {
			// Submodule change
			continue
		}

		result = append(result, change)
	}

	return result, nil
}

func (a *Analyzer) diffTree(ctx context.Context, commit *object.Commit) (object.Changes, error) {
	commitTree, err := commit.Tree()
	if err != nil {
		return nil, errors.Wrap(err, "error reading commit tree")
	}

	parentTree := &object.Tree{}
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

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, commitTree, &object.DiffTreeOptions{
		DetectRenames:    true,
		RenameScore:      a.opts.RenameScore,
		OnlyExactRenames: false,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error computing tree diff")
	}

	return changes, nil
}

func (a *Analyzer) processChange(ctx context.Context, gitChange *object.Change) (*model.Change, error) {
	parentFile, commitFile, err := gitChange.Files()
	if err != nil {
		return nil, err
	}

	if parentFile == nil && commitFile == nil {
		return nil, nil
	}

	action, err := gitChange.Action()
	if err != nil {
		return nil, err
	}

	change := &model.Change{}

	switch {
	case action == merkletrie.Insert:
		change.Type = model.ChangeAdd
		change.Path = gitChange.To.Name

	case action == merkletrie.Delete:
		change.Type = model.ChangeDelete
		change.Path = gitChange.From.Name

	case gitChange.From.Name != gitChange.To.Name:
		change.Type = model.ChangeMove
		change.Path = gitChange.To.Name
		change.OldPath = gitChange.From.Name

	default:
		change.Type = model.ChangeModify
		change.Path = gitChange.To.Name
	}

	change.Binary, err = a.isBinary(parentFile, commitFile)
	if err != nil {
		return nil, err
	}

	if change.Binary {
		return change, nil
	}

	change.LinesAdded, change.LinesRemoved, err = a.countLines(ctx, gitChange)
	if err != nil {
		return nil, err
	}

	return change, nil
}

func (a *Analyzer) isBinary(files ...*object.File) (bool, error) {
	for _, f := range files {
		if f == nil {
			continue
		}

		isBinary, err := a.sniff(f)
		if err != nil {
			return false, err
		}
		if isBinary {
			return true, nil
		}
	}

	return false, nil
}

// sniff looks for a NUL byte in the first BinaryThreshold bytes of the blob.
func (a *Analyzer) sniff(f *object.File) (bin bool, err error) {
	if a.opts.BinaryThreshold <= 0 {
		return f.IsBinary()
	}

	reader, err := f.Reader()
	if err != nil {
		return false, err
	}
	defer ioutil.CheckClose(reader, &err)

	return binary.IsBinary(io.LimitReader(reader, a.opts.BinaryThreshold))
}

// countLines formats a dedicated single file patch, with no context lines, and counts its lines.
func (a *Analyzer) countLines(ctx context.Context, gitChange *object.Change) (int, int, error) {
	patch, err := gitChange.PatchContext(ctx)
	if err != nil {
		return 0, 0, err
	}

	var output bytes.Buffer
	err = diff.NewUnifiedEncoder(&output, 0).Encode(patch)
	if err != nil {
		return 0, 0, err
	}

	return CountUnified(&output)
}

func changeName(c *object.Change) string {
	if c.To.Name != "" {
		return c.To.Name
	}
	return c.From.Name
}
