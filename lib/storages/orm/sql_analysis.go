package orm

import (
	"time"

	"github.com/samber/lo"

	"github.com/Lucineia/RepositoryMiner/lib/model"
)

type sqlFileAnalysis struct {
	CommitID   string `gorm:"primaryKey"`
	Path       string `gorm:"primaryKey"`
	RunID      string `gorm:"index"`
	CommitDate time.Time
	PathHash   uint32 `gorm:"index"`
	Language   string

	CodeLines    int
	CommentLines int
	BlankLines   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlFileAnalysis(f *model.FileAnalysis) *sqlFileAnalysis {
	return &sqlFileAnalysis{
		CommitID:     f.Commit,
		Path:         f.Path,
		RunID:        f.RunID,
		CommitDate:   f.CommitDate,
		PathHash:     f.PathHash,
		Language:     f.Language,
		CodeLines:    f.Lines.Code,
		CommentLines: f.Lines.Comments,
		BlankLines:   f.Lines.Blanks,
	}
}

func (s *sqlFileAnalysis) ToModel(types []*sqlTypeAnalysis) *model.FileAnalysis {
	return &model.FileAnalysis{
		RunID:      s.RunID,
		Commit:     s.CommitID,
		CommitDate: s.CommitDate,
		Path:       s.Path,
		PathHash:   s.PathHash,
		Language:   s.Language,
		Lines: model.LineCounts{
			Code:     s.CodeLines,
			Comments: s.CommentLines,
			Blanks:   s.BlankLines,
		},
		Types: lo.Map(types, func(t *sqlTypeAnalysis, _ int) *model.TypeAnalysis { return t.ToModel() }),
	}
}

type sqlTypeAnalysis struct {
	CommitID string `gorm:"primaryKey"`
	Path     string `gorm:"primaryKey"`
	Name     string `gorm:"primaryKey"`
	RunID    string `gorm:"index"`

	// Position of the type inside the file
	Position  int
	Archetype string

	Metrics map[string]float64            `gorm:"serializer:json"`
	Methods map[string]map[string]float64 `gorm:"serializer:json"`
	Smells  []*sqlVerdict                 `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type sqlVerdict struct {
	Smell      string            `json:"smell"`
	Members    []string          `json:"members"`
	Thresholds []model.Threshold `json:"thresholds"`
}

func newSqlTypeAnalysis(f *model.FileAnalysis, index int, t *model.TypeAnalysis) *sqlTypeAnalysis {
	return &sqlTypeAnalysis{
		CommitID:  f.Commit,
		Path:      f.Path,
		Name:      t.Name,
		RunID:     f.RunID,
		Position:  index,
		Archetype: t.Archetype,
		Metrics:   encodeMap(t.Metrics),
		Methods:   encodeMap(t.Methods),
		Smells: lo.Map(t.Smells, func(v *model.Verdict, _ int) *sqlVerdict {
			return &sqlVerdict{
				Smell:      v.Smell,
				Members:    v.Members,
				Thresholds: v.Thresholds,
			}
		}),
	}
}

func (s *sqlTypeAnalysis) ToModel() *model.TypeAnalysis {
	return &model.TypeAnalysis{
		Name:      s.Name,
		Archetype: s.Archetype,
		Metrics:   decodeMap(s.Metrics),
		Methods:   decodeMap(s.Methods),
		Smells: lo.Map(s.Smells, func(v *sqlVerdict, _ int) *model.Verdict {
			return &model.Verdict{
				Smell:      v.Smell,
				Members:    v.Members,
				Thresholds: v.Thresholds,
			}
		}),
	}
}

func (s *sqlFileAnalysis) TableName() string {
	return "file_analyses"
}

func (s *sqlTypeAnalysis) TableName() string {
	return "type_analyses"
}
