package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aanand-mishra/school-api/internal/storage"
	"github.com/aanand-mishra/school-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedAges inserts one student per age, in order, and returns their ids.
func seedAges(t *testing.T, s *SQLite, ages ...int) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(ages))
	for i, age := range ages {
		ids = append(ids, mustCreateStudent(t, s,
			fmt.Sprintf("student%d", i), fmt.Sprintf("student%d@test.com", i), age))
	}
	return ids
}

func collect(t *testing.T, s *SQLite, minAge int) []types.Student {
	t.Helper()

	var students []types.Student
	for student, err := range s.StudentsOlderThan(context.Background(), minAge) {
		require.NoError(t, err)
		students = append(students, student)
	}
	return students
}

func TestStudentRowsOlderThan(t *testing.T) {
	s := newTestStorage(t)
	ids := seedAges(t, s, 15, 20, 25)

	set, err := s.StudentRowsOlderThan(context.Background(), 18)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "surname", "email", "age", "registered_at"}, set.Columns)

	rows := set.Rows
	require.Len(t, rows, 2)

	for i, row := range rows {
		require.Len(t, row, len(set.Columns))
		assert.Equal(t, ids[i+1], row[0])
		assert.Equal(t, fmt.Sprintf("student%d", i+1), row[1])
		assert.Equal(t, "Tester", row[2])
		assert.Equal(t, fmt.Sprintf("student%d@test.com", i+1), row[3])
		assert.IsType(t, time.Time{}, row[5])
	}
	assert.Equal(t, int64(20), rows[0][4])
	assert.Equal(t, int64(25), rows[1][4])
}

func TestStudentsOlderThan(t *testing.T) {
	s := newTestStorage(t)
	ids := seedAges(t, s, 15, 20, 25)

	students := collect(t, s, 18)
	require.Len(t, students, 2)

	assert.Equal(t, ids[1], students[0].ID)
	assert.Equal(t, 20, students[0].Age)
	assert.Equal(t, "student1@test.com", students[0].Email)
	assert.Equal(t, "Tester", students[0].Surname)
	assert.False(t, students[0].RegisteredAt.IsZero())

	assert.Equal(t, ids[2], students[1].ID)
	assert.Equal(t, 25, students[1].Age)
}

func TestAgeFiltersAgree(t *testing.T) {
	s := newTestStorage(t)
	seedAges(t, s, 0, 15, 17, 18, 19, 40, 18, 65)

	tests := []struct {
		minAge  int
		wantLen int
	}{
		{minAge: -1, wantLen: 8},
		{minAge: 15, wantLen: 6},
		{minAge: 18, wantLen: 3},
		{minAge: 19, wantLen: 2},
		{minAge: 65, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("older than %d", tt.minAge), func(t *testing.T) {
			set, err := s.StudentRowsOlderThan(context.Background(), tt.minAge)
			require.NoError(t, err)
			rows := set.Rows
			require.Len(t, rows, tt.wantLen)

			students := collect(t, s, tt.minAge)
			require.Len(t, students, tt.wantLen)

			for i, row := range rows {
				assert.Equal(t, row[0], students[i].ID)
				assert.Greater(t, students[i].Age, tt.minAge)
			}
		})
	}
}

func TestStudentsOlderThanIsLazy(t *testing.T) {
	s := newTestStorage(t)
	seq := s.StudentsOlderThan(context.Background(), 18)

	// inserted after the sequence was built, before it was ranged
	seedAges(t, s, 30)

	var first []types.Student
	for student, err := range seq {
		require.NoError(t, err)
		first = append(first, student)
	}
	require.Len(t, first, 1)

	mustCreateStudent(t, s, "late", "late@test.com", 31)

	var second []types.Student
	for student, err := range seq {
		require.NoError(t, err)
		second = append(second, student)
	}
	assert.Len(t, second, 2)
}

func TestStudentsOlderThanEarlyBreakReleasesRows(t *testing.T) {
	s := newTestStorage(t)
	seedAges(t, s, 20, 21, 22)

	for range 5 {
		for _, err := range s.StudentsOlderThan(context.Background(), 18) {
			require.NoError(t, err)
			break
		}
	}

	// A leaked cursor would keep a connection busy; the pool must still
	// serve plain queries and writes.
	set, err := s.StudentRowsOlderThan(context.Background(), 18)
	require.NoError(t, err)
	assert.Len(t, set.Rows, 3)

	mustCreateStudent(t, s, "after", "after@test.com", 23)
	assert.Equal(t, 0, s.Db.Stats().InUse)
}

func TestAgeFiltersMissingTable(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Db.Exec("DROP TABLE course_student; DROP TABLE student")
	require.NoError(t, err)

	_, err = s.StudentRowsOlderThan(context.Background(), 18)
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)

	var got error
	for _, err := range s.StudentsOlderThan(context.Background(), 18) {
		got = err
	}
	require.Error(t, got)

	// the connection acquired for the raw query is back in the pool
	assert.Equal(t, 0, s.Db.Stats().InUse)
}

func TestStudentRowsFollowTableColumns(t *testing.T) {
	s := newTestStorage(t)
	seedAges(t, s, 20)

	_, err := s.Db.Exec("ALTER TABLE student ADD COLUMN nickname TEXT NOT NULL DEFAULT 'none'")
	require.NoError(t, err)

	set, err := s.StudentRowsOlderThan(context.Background(), 18)
	require.NoError(t, err)
	require.Len(t, set.Rows, 1)
	require.Len(t, set.Columns, 7)

	assert.Equal(t, "nickname", set.Columns[6])
	assert.Equal(t, "none", set.Rows[0][6])
	assert.Len(t, set.Rows[0], len(set.Columns))
}

func TestStudentsOlderThanCanceledContext(t *testing.T) {
	s := newTestStorage(t)
	seedAges(t, s, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.StudentRowsOlderThan(ctx, 18)
	require.ErrorIs(t, err, context.Canceled)
}
