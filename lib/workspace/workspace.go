package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/consoles"
	"github.com/Lucineia/RepositoryMiner/lib/languages/java"
	"github.com/Lucineia/RepositoryMiner/lib/miner"
	"github.com/Lucineia/RepositoryMiner/lib/model"
	"github.com/Lucineia/RepositoryMiner/lib/storages"
	"github.com/Lucineia/RepositoryMiner/lib/storages/orm"
	"github.com/Lucineia/RepositoryMiner/lib/utils"
)

const mysqlPrefix = "mysql://"

// Workspace is where the mined data is kept, together with the configured defaults.
type Workspace struct {
	console consoles.Console
	storage storages.Storage
}

// NewWorkspace opens the database named by db: ":memory:", a *.sqlite file or mysql://<dsn>.
// An empty db uses ./.repominer/repominer.sqlite, or the one in the home folder if ./.repominer does
// not exist.
func NewWorkspace(console consoles.Console, db string) (*Workspace, error) {
	if db == "" {
		if _, err := os.Stat("./.repominer"); err == nil {
			db = "./.repominer/repominer.sqlite"
		} else {
			db = "~/.repominer/repominer.sqlite"
		}
	}

	dialector, err := dialectorFor(db)
	if err != nil {
		return nil, err
	}

	storage, err := orm.NewGormStorage(dialector, console)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		console: console,
		storage: storage,
	}, nil
}

func dialectorFor(db string) (gorm.Dialector, error) {
	switch {
	case db == ":memory:":
		return orm.WithSqliteInMemory(), nil

	case strings.HasPrefix(db, mysqlPrefix):
		return orm.WithMySql(strings.TrimPrefix(db, mysqlPrefix))

	case strings.HasSuffix(db, ".sqlite"):
		file, err := utils.PathAbs(db)
		if err != nil {
			return nil, err
		}

		err = createWorkspaceDir(file)
		if err != nil {
			return nil, err
		}

		return orm.WithSqlite(file), nil

	default:
		return nil, fmt.Errorf("unknown storage type for %v", db)
	}
}

func createWorkspaceDir(file string) error {
	path := filepath.Dir(file)

	if _, err := os.Stat(path); err != nil {
		err = os.MkdirAll(path, 0o700)
		if err != nil {
			return errors.Wrapf(err, "error creating workspace at %v", path)
		}
	}

	return nil
}

func (w *Workspace) Close() error {
	return w.storage.Close()
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) Storage() storages.Storage {
	return w.storage
}

// Providers lists the parsers bundled with the tool.
func (w *Workspace) Providers() []ast.Provider {
	return []ast.Provider{java.NewProvider()}
}

// Mine runs the miner over path, after filling opts with the workspace defaults.
func (w *Workspace) Mine(ctx context.Context, path string, opts miner.Options) (*miner.Summary, error) {
	config, err := w.storage.LoadConfig()
	if err != nil {
		return nil, err
	}

	opts, err = ApplyConfig(config, opts)
	if err != nil {
		return nil, err
	}

	m, err := miner.New(w.console, w.storage, w.Providers(), opts)
	if err != nil {
		return nil, err
	}

	return m.Mine(ctx, path)
}

func (w *Workspace) LoadAnalysis(commit string) ([]*model.FileAnalysis, error) {
	return w.storage.LoadAnalysis(commit)
}

// SetConfig changes one workspace default. It returns false when the value was already set.
func (w *Workspace) SetConfig(key string, value string) (bool, error) {
	if _, ok := configKeys[key]; !ok {
		return false, errors.Errorf("unknown configuration %v. Known ones: %v", key, strings.Join(ConfigKeys(), ", "))
	}

	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return false, err
	}

	v, ok := cfg[key]
	if ok && v == value {
		return false, nil
	}

	cfg[key] = value

	_, err = ApplyConfig(cfg, miner.Options{})
	if err != nil {
		return false, err
	}

	err = w.storage.WriteConfig(cfg)
	if err != nil {
		return false, err
	}

	return true, nil
}
