// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver.
//
// Plain CRUD goes through database/sql prepared statements. The
// object-mapped age filter goes through gorm, which shares the same
// *sql.DB connection pool (see query.go).
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aanand-mishra/school-api/internal/config"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// schema is applied on every startup. CREATE TABLE IF NOT EXISTS is
// idempotent, so an existing database is left as it is.
//
//	student        — one row per student, email is unique
//	course         — one row per course
//	course_student — many-to-many link, one row per (course, student) pair
const schema = `
	CREATE TABLE IF NOT EXISTS student (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT      NOT NULL,
		surname       TEXT      NOT NULL,
		email         TEXT      NOT NULL UNIQUE,
		age           INTEGER   NOT NULL,
		registered_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS course (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS course_student (
		course_id  INTEGER NOT NULL REFERENCES course(id)  ON DELETE CASCADE,
		student_id INTEGER NOT NULL REFERENCES student(id) ON DELETE CASCADE,
		PRIMARY KEY (course_id, student_id)
	);

	CREATE INDEX IF NOT EXISTS course_student_student_id ON course_student (student_id);
`

// SQLite is the concrete implementation of storage.Storage.
// Db is a connection pool managed by database/sql and is safe for
// concurrent use. orm wraps the very same pool for raw object queries.
type SQLite struct {
	Db  *sql.DB
	orm *gorm.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the schema
// if it does not exist yet, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	if dir := filepath.Dir(cfg.StoragePath); dir != "." && !strings.HasPrefix(cfg.StoragePath, ":memory:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create storage dir: %w", err)
		}
	}

	// Foreign keys are off by default in SQLite and the pragma is
	// per-connection, so it goes into the DSN where every pooled
	// connection picks it up.
	db, err := sql.Open("sqlite3", dsn(cfg.StoragePath))
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
	}

	orm, err := gorm.Open(gormsqlite.New(gormsqlite.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: open orm: %w", err)
	}

	return &SQLite{Db: db, orm: orm}, nil
}

// Close releases every pooled connection.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
