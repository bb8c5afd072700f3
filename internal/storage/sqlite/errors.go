package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/school-api/internal/storage"
	"github.com/mattn/go-sqlite3"
)

// classify translates driver errors into the storage sentinels so the
// HTTP layer never has to import the driver. The original error stays in
// the chain for logging.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			// email is the only UNIQUE column in the schema
			return fmt.Errorf("%w: %w", storage.ErrDuplicateEmail, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %w", storage.ErrNotFound, err)
		}
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", storage.ErrNotFound, err)
	}

	return err
}
