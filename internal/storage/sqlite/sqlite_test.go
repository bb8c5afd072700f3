package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aanand-mishra/school-api/internal/config"
	"github.com/aanand-mishra/school-api/internal/storage"
	"github.com/aanand-mishra/school-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLite {
	t.Helper()

	s, err := New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "school.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func mustCreateStudent(t *testing.T, s *SQLite, name, email string, age int) int64 {
	t.Helper()

	id, err := s.CreateStudent(context.Background(), name, "Tester", email, age)
	require.NoError(t, err)
	return id
}

func TestCreateAndGetStudent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	id, err := s.CreateStudent(ctx, "Ana", "Ruiz", "ana@test.com", 20)
	require.NoError(t, err)

	got, err := s.GetStudentByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "Ruiz", got.Surname)
	assert.Equal(t, "ana@test.com", got.Email)
	assert.Equal(t, 20, got.Age)
	assert.True(t, got.RegisteredAt.After(before), "registered_at %v not stamped on insert", got.RegisteredAt)
}

func TestGetStudentByIDNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetStudentByID(context.Background(), 42)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	firstID := mustCreateStudent(t, s, "Ana", "same@test.com", 20)

	_, err := s.CreateStudent(ctx, "Eva", "Other", "same@test.com", 30)
	require.ErrorIs(t, err, storage.ErrDuplicateEmail)

	students, err := s.GetStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, firstID, students[0].ID)
	assert.Equal(t, "Ana", students[0].Name)
}

func TestGetStudentsEmpty(t *testing.T) {
	s := newTestStorage(t)

	students, err := s.GetStudents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestUpdateStudentKeepsRegisteredAt(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id := mustCreateStudent(t, s, "Ana", "ana@test.com", 20)
	original, err := s.GetStudentByID(ctx, id)
	require.NoError(t, err)

	updated, err := s.UpdateStudentByID(ctx, id, types.Student{
		Name:         "Ana Maria",
		Surname:      "Ruiz",
		Email:        "ana.maria@test.com",
		Age:          21,
		RegisteredAt: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "ana.maria@test.com", updated.Email)
	assert.Equal(t, 21, updated.Age)
	assert.True(t, original.RegisteredAt.Equal(updated.RegisteredAt),
		"registered_at changed from %v to %v", original.RegisteredAt, updated.RegisteredAt)
}

func TestUpdateStudentErrors(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	mustCreateStudent(t, s, "Ana", "ana@test.com", 20)
	evaID := mustCreateStudent(t, s, "Eva", "eva@test.com", 22)

	_, err := s.UpdateStudentByID(ctx, 999, types.Student{Name: "X", Surname: "Y", Email: "x@test.com"})
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.UpdateStudentByID(ctx, evaID, types.Student{Name: "Eva", Surname: "Y", Email: "ana@test.com", Age: 22})
	require.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestDeleteStudentCascadesEnrollments(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	studentID := mustCreateStudent(t, s, "Ana", "ana@test.com", 20)
	courseID, err := s.CreateCourse(ctx, "Algebra", "Linear algebra basics")
	require.NoError(t, err)
	require.NoError(t, s.AddStudentToCourse(ctx, courseID, studentID))

	require.NoError(t, s.DeleteStudentByID(ctx, studentID))

	students, err := s.GetCourseStudents(ctx, courseID)
	require.NoError(t, err)
	assert.Empty(t, students)

	require.ErrorIs(t, s.DeleteStudentByID(ctx, studentID), storage.ErrNotFound)
}
