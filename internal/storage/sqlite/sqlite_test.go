package sqlite_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-web/internal/storage/sqlite"
	"github.com/aanand-mishra/students-web/internal/types"
)

// newMock returns a SQLite accessor backed by a sqlmock connection, so
// the SQL text, argument binding, and error wrapping can be checked
// without touching a real database file.
func newMock(t *testing.T) (*sqlite.SQLite, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &sqlite.SQLite{Db: db}, mock
}

func TestCreateStudent(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO students (name) VALUES (?)")).
		ExpectExec().
		WithArgs("Ada").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := s.CreateStudent("Ada")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStudentExecError(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO students (name) VALUES (?)")).
		ExpectExec().
		WithArgs("Ada").
		WillReturnError(errors.New("database is locked"))

	_, err := s.CreateStudent("Ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CreateStudent: exec")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudents(t *testing.T) {
	s, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, "Ada").
		AddRow(2, "Grace")
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT id, name FROM students")).
		ExpectQuery().
		WillReturnRows(rows)

	students, err := s.GetStudents()
	require.NoError(t, err)
	assert.Equal(t, []types.Student{
		{ID: 1, Name: "Ada"},
		{ID: 2, Name: "Grace"},
	}, students)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudentsEmpty(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT id, name FROM students")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	students, err := s.GetStudents()
	require.NoError(t, err)

	// empty but non-nil, so JSON encodes [] rather than null
	assert.NotNil(t, students)
	assert.Empty(t, students)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountStudents(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.CountStudents()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountStudentsError(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students")).
		WillReturnError(errors.New("database is locked"))

	_, err := s.CountStudents()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CountStudents")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudentByID(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT id, name FROM students WHERE id = ? LIMIT 1")).
		ExpectQuery().
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Ada"))

	student, err := s.GetStudentByID(1)
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 1, Name: "Ada"}, student)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudentByIDNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT id, name FROM students WHERE id = ? LIMIT 1")).
		ExpectQuery().
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := s.GetStudentByID(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no student found with id: 42")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStudentByID(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectPrepare(regexp.QuoteMeta("UPDATE students SET name = ? WHERE id = ?")).
		ExpectExec().
		WithArgs("Ada Lovelace", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT id, name FROM students WHERE id = ? LIMIT 1")).
		ExpectQuery().
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Ada Lovelace"))

	updated, err := s.UpdateStudentByID(1, types.Student{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 1, Name: "Ada Lovelace"}, updated)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStudentByID(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectPrepare(regexp.QuoteMeta("DELETE FROM students WHERE id = ?")).
		ExpectExec().
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.DeleteStudentByID(1))
	require.NoError(t, mock.ExpectationsWereMet())
}
