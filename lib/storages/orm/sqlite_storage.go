package orm

import (
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func WithSqlite(file string) gorm.Dialector {
	return sqlite.Open(file + "?_pragma=journal_mode(WAL)")
}

func WithSqliteInMemory() gorm.Dialector {
	return sqlite.Open(":memory:")
}

// WithMySql accepts a go-sql-driver DSN, like user:pass@tcp(host:3306)/db.
func WithMySql(dsn string) (gorm.Dialector, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "invalid MySQL DSN")
	}

	cfg.ParseTime = true

	return mysql.New(mysql.Config{
		DSNConfig: cfg,
	}), nil
}
