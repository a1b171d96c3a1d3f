package model

import (
	"hash/crc32"
	"path/filepath"
	"time"
)

type LineCounts struct {
	Code     int
	Comments int
	Blanks   int
}

// FileAnalysis is the record emitted for one source file of one analyzed commit.
type FileAnalysis struct {
	RunID      string
	Commit     string
	CommitDate time.Time
	Path       string
	PathHash   uint32
	Language   string
	Lines      LineCounts
	Types      []*TypeAnalysis
}

func NewFileAnalysis(runID string, commit *Commit, path string) *FileAnalysis {
	path = filepath.ToSlash(path)

	return &FileAnalysis{
		RunID:      runID,
		Commit:     commit.ID,
		CommitDate: commit.CommitDate(),
		Path:       path,
		PathHash:   HashPath(path),
	}
}

func (f *FileAnalysis) CountSmells() int {
	result := 0
	for _, t := range f.Types {
		result += len(t.Smells)
	}
	return result
}

type TypeAnalysis struct {
	Name      string
	Archetype string
	Metrics   map[string]float64
	Methods   map[string]map[string]float64
	Smells    []*Verdict
}

// HashPath is the stable hash of a repository relative path.
func HashPath(path string) uint32 {
	return crc32.ChecksumIEEE([]byte(filepath.ToSlash(path)))
}
