package orm

import (
	"log"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Lucineia/RepositoryMiner/lib/consoles"
	"github.com/Lucineia/RepositoryMiner/lib/model"
	"github.com/Lucineia/RepositoryMiner/lib/storages"
)

type gormStorage struct {
	mutex   sync.RWMutex
	db      *gorm.DB
	console consoles.Console

	sqlConfigs map[string]*sqlConfig
	sqlRefs    map[string]*sqlReference
	sqlCommits map[string]*sqlCommit
	sqlChanges map[string]*sqlChange
}

func NewGormStorage(d gorm.Dialector, console consoles.Console) (storages.Storage, error) {
	l := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		Logger: l,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error opening database")
	}

	if d.Name() == "sqlite" {
		// In memory databases live inside a single connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&sqlConfig{},
		&sqlReference{},
		&sqlCommit{}, &sqlChange{},
		&sqlFileAnalysis{}, &sqlTypeAnalysis{},
	)
	if err != nil {
		return nil, errors.Wrap(err, "error migrating database")
	}

	return &gormStorage{
		db:         db,
		console:    console,
		sqlConfigs: map[string]*sqlConfig{},
		sqlRefs:    map[string]*sqlReference{},
		sqlCommits: map[string]*sqlCommit{},
		sqlChanges: map[string]*sqlChange{},
	}, nil
}

func (s *gormStorage) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func createCache[T sqlTable](rows []T) map[string]T {
	return lo.Associate(rows, func(i T) (string, T) {
		return i.CacheKey(), i
	})
}

func (s *gormStorage) session() *gorm.DB {
	now := time.Now().Local()
	return s.db.Session(&gorm.Session{
		NowFunc:         func() time.Time { return now },
		CreateBatchSize: 300,
	})
}

func (s *gormStorage) LoadReferences(repo string) ([]*model.Reference, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.console.Debugf("Loading references of %v...\n", repo)

	var refs []*sqlReference
	err := s.db.Where("repository = ?", repo).
		Order("type, path").
		Find(&refs).Error
	if err != nil {
		return nil, err
	}

	addMap(&s.sqlRefs, createCache(refs))

	return lo.Map(refs, func(r *sqlReference, _ int) *model.Reference { return r.ToModel() }), nil
}

func (s *gormStorage) WriteReferences(repo string, refs []*model.Reference) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sqlRefs := prepareChanges(refs, func(r *model.Reference) *sqlReference { return newSqlReference(repo, r) }, &s.sqlRefs)
	if len(sqlRefs) == 0 {
		return nil
	}

	err := s.session().Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlRefs).Error
	if err != nil {
		return err
	}

	addList(&s.sqlRefs, sqlRefs)

	return nil
}

func (s *gormStorage) LoadCommits(repo string) ([]*model.Commit, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.console.Debugf("Loading commits of %v...\n", repo)

	var commits []*sqlCommit
	err := s.db.Where("repository = ?", repo).
		Order("commit_date DESC, id").
		Find(&commits).Error
	if err != nil {
		return nil, err
	}

	addMap(&s.sqlCommits, createCache(commits))

	var changes []*sqlChange
	err = s.db.Where("commit_id IN (?)", s.db.Model(&sqlCommit{}).Select("id").Where("repository = ?", repo)).
		Order("commit_id, path").
		Find(&changes).Error
	if err != nil {
		return nil, err
	}

	addMap(&s.sqlChanges, createCache(changes))

	byCommit := lo.GroupBy(changes, func(c *sqlChange) string { return c.CommitID })

	return lo.Map(commits, func(c *sqlCommit, _ int) *model.Commit { return c.ToModel(byCommit[c.ID]) }), nil
}

func (s *gormStorage) WriteCommits(repo string, commits []*model.Commit) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sqlCommits := prepareChanges(commits, func(c *model.Commit) *sqlCommit { return newSqlCommit(repo, c) }, &s.sqlCommits)

	var sqlChanges []*sqlChange
	for _, c := range commits {
		for _, ch := range c.Changes {
			sc := newSqlChange(c, ch)
			if prepareChange(&s.sqlChanges, sc) {
				sqlChanges = append(sqlChanges, sc)
			}
		}
	}

	db := s.session()

	if len(sqlCommits) > 0 {
		err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlCommits).Error
		if err != nil {
			return err
		}
	}

	addList(&s.sqlCommits, sqlCommits)

	if len(sqlChanges) > 0 {
		err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlChanges).Error
		if err != nil {
			return err
		}
	}

	addList(&s.sqlChanges, sqlChanges)

	return nil
}

// LoadAnalysis returns the file records of every commit whose id starts with the given text.
func (s *gormStorage) LoadAnalysis(commit string) ([]*model.FileAnalysis, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var files []*sqlFileAnalysis
	err := s.db.Where("commit_id LIKE ?", commit+"%").
		Order("commit_date, commit_id, path").
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	var types []*sqlTypeAnalysis
	err = s.db.Where("commit_id LIKE ?", commit+"%").
		Order("commit_id, path, position").
		Find(&types).Error
	if err != nil {
		return nil, err
	}

	byFile := lo.GroupBy(types, func(t *sqlTypeAnalysis) string { return compositeKey(t.CommitID, t.Path) })

	return lo.Map(files, func(f *sqlFileAnalysis, _ int) *model.FileAnalysis {
		return f.ToModel(byFile[compositeKey(f.CommitID, f.Path)])
	}), nil
}

func (s *gormStorage) WriteAnalysis(records []*model.FileAnalysis) error {
	if len(records) == 0 {
		return nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	sqlFiles := lo.Map(records, func(f *model.FileAnalysis, _ int) *sqlFileAnalysis { return newSqlFileAnalysis(f) })

	var sqlTypes []*sqlTypeAnalysis
	for _, f := range records {
		for i, t := range f.Types {
			sqlTypes = append(sqlTypes, newSqlTypeAnalysis(f, i, t))
		}
	}

	return s.session().Transaction(func(tx *gorm.DB) error {
		for _, f := range sqlFiles {
			// Types removed from a file must not survive a new run
			err := tx.Where("commit_id = ? AND path = ?", f.CommitID, f.Path).Delete(&sqlTypeAnalysis{}).Error
			if err != nil {
				return err
			}
		}

		err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlFiles).Error
		if err != nil {
			return err
		}

		if len(sqlTypes) > 0 {
			err = tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlTypes).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *gormStorage) LoadConfig() (map[string]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.console.Debugf("Loading config...\n")

	var sqlConfigs []*sqlConfig
	err := s.db.Find(&sqlConfigs).Error
	if err != nil {
		return nil, err
	}

	s.sqlConfigs = createCache(sqlConfigs)

	result := map[string]string{}
	for _, sc := range sqlConfigs {
		result[sc.Key] = sc.Value
	}

	return result, nil
}

func (s *gormStorage) WriteConfig(config map[string]string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var sqlConfigs []*sqlConfig
	for k, v := range config {
		sc := newSqlConfig(k, v)
		if prepareChange(&s.sqlConfigs, sc) {
			sqlConfigs = append(sqlConfigs, sc)
		}
	}

	if len(sqlConfigs) == 0 {
		return nil
	}

	err := s.session().Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlConfigs).Error
	if err != nil {
		return err
	}

	addList(&s.sqlConfigs, sqlConfigs)

	return nil
}

func addMap[K comparable, V any](target *map[K]V, toAdd map[K]V) {
	for k, v := range toAdd {
		(*target)[k] = v
	}
}

func addList[T sqlTable](target *map[string]T, toAdd []T) {
	for _, v := range toAdd {
		(*target)[v.CacheKey()] = v
	}
}

func prepareChanges[S sqlTable, M any](models []M, toSql func(M) S, cache *map[string]S) []S {
	var result []S
	for _, m := range models {
		s := toSql(m)
		if prepareChange(cache, s) {
			result = append(result, s)
		}
	}
	return result
}

// prepareChange returns true when the row differs from the cached one, ignoring timestamps.
func prepareChange[T sqlTable](byID *map[string]T, n T) bool {
	o, ok := (*byID)[n.CacheKey()]
	if ok {
		ro := reflect.Indirect(reflect.ValueOf(o))
		rn := reflect.Indirect(reflect.ValueOf(n))

		rn.FieldByName("CreatedAt").Set(ro.FieldByName("CreatedAt"))
		rn.FieldByName("UpdatedAt").Set(ro.FieldByName("UpdatedAt"))
	}

	if ok && reflect.DeepEqual(n, o) {
		return false
	} else {
		(*byID)[n.CacheKey()] = n
		return true
	}
}
