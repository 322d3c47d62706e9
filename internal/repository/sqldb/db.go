package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Supported store drivers. MySQL backs production deployments; sqlite serves
// local development and tests with the same repository code.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// DB wraps the shared sql handle together with the driver it was opened with,
// so repositories can pick the right schema dialect.
type DB struct {
	*sql.DB
	driver string
}

func (d *DB) Driver() string { return d.driver }

// Open connects to the relational store. The MySQL DSN must carry
// parseTime=true; sqlite paths get their parent directory created on demand.
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverMySQL:
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql db: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("connect to mysql: %w", err)
		}
		return &DB{DB: db, driver: driver}, nil

	case DriverSQLite:
		if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite db: %w", err)
		}

		// single writer keeps in-memory databases alive across queries
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		return &DB{DB: db, driver: driver}, nil

	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// isDuplicate reports whether err is a unique-constraint violation. MySQL
// surfaces error 1062; the sqlite driver only gives us the message text.
func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
