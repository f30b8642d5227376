package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/iliyamo/shift-scheduler/internal/config"
)

// Dialect names the SQL flavour behind a *sql.DB.  The value doubles as
// the database/sql driver name.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite3"
)

// ParseDialect validates a configured driver name.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case MySQL, SQLite:
		return Dialect(s), nil
	}
	return "", errors.Errorf("unsupported database driver %q (use mysql or sqlite3)", s)
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, conf config.DB) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(conf.Driver)
	if err != nil {
		return nil, "", err
	}

	var db *sql.DB
	switch dialect {
	case MySQL:
		db, err = sql.Open(string(MySQL), MySQLDSN(conf))
		if err != nil {
			return nil, "", errors.WithStack(err)
		}
		db.SetMaxOpenConns(conf.MaxOpenConns)
		db.SetMaxIdleConns(conf.MaxOpenConns)
		db.SetConnMaxLifetime(30 * time.Minute)
	case SQLite:
		db, err = OpenSQLite(conf.Path)
		if err != nil {
			return nil, "", err
		}
	}

	// Ping with timeout
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", errors.Wrap(err, "could not reach database")
	}
	return db, dialect, nil
}

// MySQLDSN builds the DSN.  parseTime=true maps DATE/DATETIME onto
// time.Time and loc=UTC keeps naive timestamps untouched.
func MySQLDSN(conf config.DB) string {
	c := mysql.NewConfig()
	c.User = conf.User
	c.Passwd = conf.Pass
	c.Net = "tcp"
	c.Addr = fmt.Sprintf("%s:%s", conf.Host, conf.Port)
	c.DBName = conf.Name
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

// OpenSQLite opens a SQLite database at path (":memory:" for a private
// in-memory database).  Foreign keys are switched on so shift rows cascade
// with their employee, and transactions take the write lock when they begin
// so an overlap check and the following insert cannot interleave with
// another writer.  A single connection is kept: SQLite serializes writers
// anyway and an in-memory database lives only as long as its connection.
func OpenSQLite(path string) (*sql.DB, error) {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_txlock", "immediate")
	q.Set("_busy_timeout", "5000")
	db, err := sql.Open(string(SQLite), "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}
