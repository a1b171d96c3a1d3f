package orm

import (
	"time"

	"github.com/samber/lo"

	"github.com/Lucineia/RepositoryMiner/lib/model"
)

type sqlCommit struct {
	ID         string `gorm:"primaryKey"`
	Repository string `gorm:"index"`
	Message    string

	AuthorName     string
	AuthorEmail    string
	AuthorDate     time.Time
	CommitterName  string
	CommitterEmail string
	CommitDate     time.Time `gorm:"index"`

	Parents      []string `gorm:"serializer:json"`
	Merge        bool
	LinesAdded   int
	LinesRemoved int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlCommit(repo string, c *model.Commit) *sqlCommit {
	return &sqlCommit{
		ID:             c.ID,
		Repository:     repo,
		Message:        c.Message,
		AuthorName:     c.Author.Name,
		AuthorEmail:    c.Author.Email,
		AuthorDate:     c.Author.When,
		CommitterName:  c.Committer.Name,
		CommitterEmail: c.Committer.Email,
		CommitDate:     c.Committer.When,
		Parents:        encodeList(c.Parents),
		Merge:          c.IsMerge(),
		LinesAdded:     c.LinesAdded(),
		LinesRemoved:   c.LinesRemoved(),
	}
}

func (s *sqlCommit) ToModel(changes []*sqlChange) *model.Commit {
	return &model.Commit{
		ID:      s.ID,
		Message: s.Message,
		Author: model.PersonIdent{
			Name:  s.AuthorName,
			Email: s.AuthorEmail,
			When:  s.AuthorDate,
		},
		Committer: model.PersonIdent{
			Name:  s.CommitterName,
			Email: s.CommitterEmail,
			When:  s.CommitDate,
		},
		Parents: decodeList(s.Parents),
		Changes: lo.Map(changes, func(c *sqlChange, _ int) *model.Change { return c.ToModel() }),
	}
}

type sqlChange struct {
	CommitID     string `gorm:"primaryKey"`
	Path         string `gorm:"primaryKey"`
	OldPath      string
	Type         string
	LinesAdded   int
	LinesRemoved int
	Binary       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlChange(commit *model.Commit, c *model.Change) *sqlChange {
	return &sqlChange{
		CommitID:     commit.ID,
		Path:         c.Path,
		OldPath:      c.OldPath,
		Type:         c.Type.String(),
		LinesAdded:   c.LinesAdded,
		LinesRemoved: c.LinesRemoved,
		Binary:       c.Binary,
	}
}

func (s *sqlChange) ToModel() *model.Change {
	t, _ := model.ParseChangeType(s.Type)

	return &model.Change{
		Path:         s.Path,
		OldPath:      s.OldPath,
		LinesAdded:   s.LinesAdded,
		LinesRemoved: s.LinesRemoved,
		Type:         t,
		Binary:       s.Binary,
	}
}

func (s *sqlCommit) TableName() string {
	return "commits"
}

func (s *sqlCommit) CacheKey() string {
	return s.ID
}

func (s *sqlChange) TableName() string {
	return "changes"
}

func (s *sqlChange) CacheKey() string {
	return compositeKey(s.CommitID, s.Path)
}
