package storages

import (
	"github.com/Lucineia/RepositoryMiner/lib/model"
)

// Storage is where the mined data ends up.
type Storage interface {
	LoadReferences(repo string) ([]*model.Reference, error)
	WriteReferences(repo string, refs []*model.Reference) error

	LoadCommits(repo string) ([]*model.Commit, error)
	WriteCommits(repo string, commits []*model.Commit) error

	// LoadAnalysis returns the analysed files of a commit. A prefix of the commit ID is enough.
	LoadAnalysis(commit string) ([]*model.FileAnalysis, error)
	WriteAnalysis(records []*model.FileAnalysis) error

	LoadConfig() (map[string]string, error)
	WriteConfig(config map[string]string) error

	Close() error
}
