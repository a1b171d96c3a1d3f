package model

import (
	"time"

	"github.com/samber/lo"
)

type PersonIdent struct {
	Name  string
	Email string
	When  time.Time
}

// Commit is a read-only snapshot of one commit and its changes against the first parent.
type Commit struct {
	ID        string
	Message   string
	Author    PersonIdent
	Committer PersonIdent
	Parents   []string
	Changes   []*Change
}

func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

func (c *Commit) AuthorDate() time.Time {
	return c.Author.When
}

func (c *Commit) CommitDate() time.Time {
	return c.Committer.When
}

func (c *Commit) LinesAdded() int {
	return lo.SumBy(c.Changes, func(i *Change) int { return i.LinesAdded })
}

func (c *Commit) LinesRemoved() int {
	return lo.SumBy(c.Changes, func(i *Change) int { return i.LinesRemoved })
}

func (c *Commit) ShortID() string {
	if len(c.ID) > 10 {
		return c.ID[:10]
	}
	return c.ID
}
