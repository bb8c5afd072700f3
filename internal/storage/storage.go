// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// Handlers (HTTP layer) depend only on this interface, never on a
// concrete database package. Tests exercise the handlers against the
// real SQLite implementation opened on a temporary file.
package storage

import (
	"context"
	"errors"
	"iter"

	"github.com/aanand-mishra/school-api/internal/types"
)

// Sentinel errors returned (wrapped) by every implementation.
// Callers match them with errors.Is.
var (
	// ErrNotFound means the addressed student or course does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail means another student already uses the email.
	ErrDuplicateEmail = errors.New("a student with this email already exists")
)

// Storage is the database contract.
type Storage interface {
	// ── Students ─────────────────────────────────────────────────────────

	// CreateStudent inserts a new student, stamps registered_at and
	// returns the generated primary key.
	CreateStudent(ctx context.Context, name, surname, email string, age int) (int64, error)

	// GetStudentByID fetches a single student by primary key.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns every student ordered by id.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudentByID replaces name, surname, email and age.
	// registered_at is never touched.
	UpdateStudentByID(ctx context.Context, id int64, student types.Student) (types.Student, error)

	// DeleteStudentByID removes a student and its course associations.
	DeleteStudentByID(ctx context.Context, id int64) error

	// ── Courses ──────────────────────────────────────────────────────────

	CreateCourse(ctx context.Context, name, description string) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (types.Course, error)
	GetCourses(ctx context.Context) ([]types.Course, error)

	// ── Course ⇄ Student association ─────────────────────────────────────

	// AddStudentToCourse links a student to a course. Linking twice is a no-op.
	AddStudentToCourse(ctx context.Context, courseID, studentID int64) error

	// RemoveStudentFromCourse unlinks a student from a course. Unlinking a
	// pair that is not linked is a no-op.
	RemoveStudentFromCourse(ctx context.Context, courseID, studentID int64) error

	GetCourseStudents(ctx context.Context, courseID int64) ([]types.Student, error)
	GetStudentCourses(ctx context.Context, studentID int64) ([]types.Course, error)

	// ── Age filter queries ───────────────────────────────────────────────

	// StudentRowsOlderThan runs the raw age filter on a dedicated
	// connection and returns primitive tuples in table-column order,
	// labelled with the column names the driver reported.
	StudentRowsOlderThan(ctx context.Context, minAge int) (types.RowSet, error)

	// StudentsOlderThan returns a lazy sequence of students whose age is
	// strictly greater than minAge. Every range over the sequence runs the
	// query again.
	StudentsOlderThan(ctx context.Context, minAge int) iter.Seq2[types.Student, error]
}
