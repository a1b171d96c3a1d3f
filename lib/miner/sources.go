package miner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
	"github.com/hashicorp/go-set/v2"
	"github.com/hhatto/gocloc"
	"github.com/pkg/errors"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/Lucineia/RepositoryMiner/lib/model"
	"github.com/Lucineia/RepositoryMiner/lib/utils"
)

type sourceFile struct {
	// Path is relative to the repository root, with slashes
	Path     string
	FullPath string
	Language string
	Content  []byte
	Lines    model.LineCounts
}

// sourceFinder lists the files of the checked out tree that some provider can parse.
type sourceFinder struct {
	root      string
	include   []string
	exclude   []string
	gitignore bool
	languages *set.Set[string]
}

func newSourceFinder(root string, opts Options, languages []string) (*sourceFinder, error) {
	for _, p := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid path pattern: %v", p)
		}
	}

	return &sourceFinder{
		root:      root,
		include:   opts.Include,
		exclude:   opts.Exclude,
		gitignore: !opts.NoGitignore,
		languages: set.From(languages),
	}, nil
}

// Find must run after the checkout, because the .gitignore file changes with the commit.
func (f *sourceFinder) Find() ([]*sourceFile, error) {
	matcher, err := f.loadGitIgnore()
	if err != nil {
		return nil, err
	}

	var result []*sourceFile
	err = filepath.WalkDir(f.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == f.root {
			return nil
		}

		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() || !f.accepts(rel) {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}

		lang, _ := enry.GetLanguageByExtension(rel)
		if lang == "" || !f.languages.Contains(lang) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "error reading %v", rel)
		}

		if enry.IsBinary(content) || enry.IsGenerated(rel, content) {
			return nil
		}

		lang = enry.GetLanguage(filepath.Base(rel), content)
		if !f.languages.Contains(lang) {
			return nil
		}

		result = append(result, &sourceFile{
			Path:     rel,
			FullPath: path,
			Language: lang,
			Content:  content,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "error listing source files")
	}

	err = countLines(result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (f *sourceFinder) loadGitIgnore() (*ignore.GitIgnore, error) {
	if !f.gitignore {
		return nil, nil
	}

	path := filepath.Join(f.root, ".gitignore")
	exists, err := utils.FileExists(path)
	if err != nil || !exists {
		return nil, err
	}

	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading .gitignore")
	}

	return matcher, nil
}

func (f *sourceFinder) accepts(path string) bool {
	if enry.IsVendor(path) {
		return false
	}

	for _, p := range f.exclude {
		if doublestar.MatchUnvalidated(p, path) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}

	for _, p := range f.include {
		if doublestar.MatchUnvalidated(p, path) {
			return true
		}
	}

	return false
}

func countLines(files []*sourceFile) error {
	if len(files) == 0 {
		return nil
	}

	languages := gocloc.NewDefinedLanguages()
	options := gocloc.NewClocOptions()

	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.FullPath
	}

	processor := gocloc.NewProcessor(languages, options)
	result, err := processor.Analyze(paths)
	if err != nil {
		return errors.Wrap(err, "error computing lines of code")
	}

	byPath := make(map[string]*gocloc.ClocFile, len(result.Files))
	for k, v := range result.Files {
		byPath[filepath.Clean(k)] = v
	}

	for _, file := range files {
		if c, ok := byPath[filepath.Clean(file.FullPath)]; ok {
			file.Lines = model.LineCounts{
				Code:     int(c.Code),
				Comments: int(c.Comments),
				Blanks:   int(c.Blanks),
			}
		}
	}

	return nil
}
