package sqlite

import (
	"context"
	"fmt"
	"iter"

	"github.com/aanand-mishra/school-api/internal/types"
)

// studentsOlderThanSQL is shared by both age filters so they cannot
// drift apart. The threshold is always a bound parameter.
const studentsOlderThanSQL = "SELECT * FROM student WHERE age > ? ORDER BY id"

// ─────────────────────────────────────────────────────────────────────────────
// StudentRowsOlderThan runs the age filter straight on a database/sql
// connection and returns each row as a primitive tuple.
//
// The connection is taken out of the pool for the duration of the call
// and handed back by the deferred Close on every return path. rows is
// closed first (defers run LIFO), so the connection is never released
// with an open cursor on it.
//
// The column names come from the result itself, so labels and tuple
// values always line up with whatever SELECT * expands to.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) StudentRowsOlderThan(ctx context.Context, minAge int) (types.RowSet, error) {
	conn, err := s.Db.Conn(ctx)
	if err != nil {
		return types.RowSet{}, fmt.Errorf("StudentRowsOlderThan: acquire conn: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, studentsOlderThanSQL, minAge)
	if err != nil {
		return types.RowSet{}, fmt.Errorf("StudentRowsOlderThan: query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return types.RowSet{}, fmt.Errorf("StudentRowsOlderThan: columns: %w", err)
	}

	result := make([]types.Row, 0)

	for rows.Next() {
		values := make(types.Row, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return types.RowSet{}, fmt.Errorf("StudentRowsOlderThan: scan row: %w", err)
		}
		result = append(result, values)
	}

	if err := rows.Err(); err != nil {
		return types.RowSet{}, fmt.Errorf("StudentRowsOlderThan: rows iteration: %w", err)
	}

	return types.RowSet{Columns: columns, Rows: result}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// StudentsOlderThan runs the same filter through gorm's raw-query helper
// and reconstructs every row into a types.Student.
//
// Nothing touches the database until the sequence is ranged over. Each
// range executes the query from scratch; the cursor is closed when the
// loop finishes, when the consumer breaks out, or after the first error.
// An error is yielded once with a zero Student and ends the sequence.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) StudentsOlderThan(ctx context.Context, minAge int) iter.Seq2[types.Student, error] {
	return func(yield func(types.Student, error) bool) {
		db := s.orm.WithContext(ctx)

		rows, err := db.Raw(studentsOlderThanSQL, minAge).Rows()
		if err != nil {
			yield(types.Student{}, fmt.Errorf("StudentsOlderThan: query: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var student types.Student
			if err := db.ScanRows(rows, &student); err != nil {
				yield(types.Student{}, fmt.Errorf("StudentsOlderThan: scan row: %w", err))
				return
			}
			if !yield(student, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(types.Student{}, fmt.Errorf("StudentsOlderThan: rows iteration: %w", err))
		}
	}
}
