package orm

import (
	"time"

	"github.com/Lucineia/RepositoryMiner/lib/model"
)

type sqlReference struct {
	Repository string `gorm:"primaryKey"`
	Path       string `gorm:"primaryKey"`
	Name       string
	Type       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlReference(repo string, r *model.Reference) *sqlReference {
	return &sqlReference{
		Repository: repo,
		Path:       r.Path,
		Name:       r.Name,
		Type:       r.Type.String(),
	}
}

func (s *sqlReference) CacheKey() string {
	return compositeKey(s.Repository, s.Path)
}

func (s *sqlReference) ToModel() *model.Reference {
	t := model.BranchReference
	if s.Type == model.TagReference.String() {
		t = model.TagReference
	}

	return &model.Reference{
		Name: s.Name,
		Path: s.Path,
		Type: t,
	}
}

func (s *sqlReference) TableName() string {
	return "refs"
}
