package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/school-api/internal/storage"
	"github.com/aanand-mishra/school-api/internal/types"
)

func (s *SQLite) CreateCourse(ctx context.Context, name, description string) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO course (name, description) VALUES (?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateCourse: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, name, description)
	if err != nil {
		return 0, fmt.Errorf("CreateCourse: exec: %w", classify(err))
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateCourse: last insert id: %w", err)
	}

	return lastID, nil
}

func (s *SQLite) GetCourseByID(ctx context.Context, id int64) (types.Course, error) {
	var course types.Course
	err := s.Db.QueryRowContext(ctx,
		"SELECT id, name, description FROM course WHERE id = ? LIMIT 1", id,
	).Scan(&course.ID, &course.Name, &course.Description)
	if err != nil {
		return types.Course{}, fmt.Errorf("GetCourseByID: course %d: %w", id, classify(err))
	}

	return course, nil
}

func (s *SQLite) GetCourses(ctx context.Context) ([]types.Course, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT id, name, description FROM course ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetCourses: query: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows, "GetCourses")
}

// ─────────────────────────────────────────────────────────────────────────────
// Association operations.
//
// The many-to-many relation lives in course_student as plain
// (course_id, student_id) pairs. There is no collection field on either
// entity; these functions are the only way links are created, removed or
// listed.
// ─────────────────────────────────────────────────────────────────────────────

// AddStudentToCourse links the pair. OR IGNORE makes a repeated link a
// no-op; it does not suppress foreign key failures, which come back as
// storage.ErrNotFound.
func (s *SQLite) AddStudentToCourse(ctx context.Context, courseID, studentID int64) error {
	_, err := s.Db.ExecContext(ctx,
		"INSERT OR IGNORE INTO course_student (course_id, student_id) VALUES (?, ?)",
		courseID, studentID,
	)
	if err != nil {
		return fmt.Errorf("AddStudentToCourse: course %d student %d: %w", courseID, studentID, classify(err))
	}
	return nil
}

func (s *SQLite) RemoveStudentFromCourse(ctx context.Context, courseID, studentID int64) error {
	_, err := s.Db.ExecContext(ctx,
		"DELETE FROM course_student WHERE course_id = ? AND student_id = ?",
		courseID, studentID,
	)
	if err != nil {
		return fmt.Errorf("RemoveStudentFromCourse: course %d student %d: %w", courseID, studentID, err)
	}
	return nil
}

// GetCourseStudents lists the students linked to a course, ordered by
// student id. An unknown course is ErrNotFound; a course without
// students yields an empty slice.
func (s *SQLite) GetCourseStudents(ctx context.Context, courseID int64) ([]types.Student, error) {
	if err := s.exists(ctx, "course", courseID); err != nil {
		return nil, fmt.Errorf("GetCourseStudents: %w", err)
	}

	rows, err := s.Db.QueryContext(ctx, `
		SELECT s.id, s.name, s.surname, s.email, s.age, s.registered_at
		FROM student s
		JOIN course_student cs ON cs.student_id = s.id
		WHERE cs.course_id = ?
		ORDER BY s.id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("GetCourseStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetCourseStudents: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetCourseStudents: rows iteration: %w", err)
	}

	return students, nil
}

func (s *SQLite) GetStudentCourses(ctx context.Context, studentID int64) ([]types.Course, error) {
	if err := s.exists(ctx, "student", studentID); err != nil {
		return nil, fmt.Errorf("GetStudentCourses: %w", err)
	}

	rows, err := s.Db.QueryContext(ctx, `
		SELECT c.id, c.name, c.description
		FROM course c
		JOIN course_student cs ON cs.course_id = c.id
		WHERE cs.student_id = ?
		ORDER BY c.id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("GetStudentCourses: query: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows, "GetStudentCourses")
}

func collectCourses(rows *sql.Rows, op string) ([]types.Course, error) {
	courses := make([]types.Course, 0)
	for rows.Next() {
		var course types.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.Description); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}
	return courses, nil
}

// exists reports storage.ErrNotFound when table has no row with id.
// table is always a package constant, never caller input.
func (s *SQLite) exists(ctx context.Context, table string, id int64) error {
	var one int
	err := s.Db.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if err != nil {
		return fmt.Errorf("%s %d: %w", table, id, classify(err))
	}
	return nil
}

var _ storage.Storage = (*SQLite)(nil)
