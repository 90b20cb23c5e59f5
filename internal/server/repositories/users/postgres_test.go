package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	qInsert   = `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`
	qByEmail  = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	qByID     = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	qExists   = `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\)$`
	userCols  = "id,name,email,password_hash,created_at"
	testEmail = "a@x.com"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock, db
}

func userRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(strings.Split(userCols, ",")).
		AddRow("u-1", "A", testEmail, []byte("hash"), now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(qInsert).
		WithArgs("A", testEmail, []byte("hash")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("u-1", now))

	got, err := repo.Create(context.Background(), &models.User{Name: "A", Email: testEmail, PasswordHash: []byte("hash")})
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, now, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(qInsert).
		WithArgs("A", testEmail, []byte("hash")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{Name: "A", Email: testEmail, PasswordHash: []byte("hash")})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(qInsert).
		WithArgs("A", testEmail, []byte("hash")).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Name: "A", Email: testEmail, PasswordHash: []byte("hash")})
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGetUserByEmail(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(qByEmail).WithArgs(testEmail).WillReturnRows(userRows(now))

	got, err := repo.GetUserByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: "u-1", Name: "A", Email: testEmail, PasswordHash: []byte("hash"), CreatedAt: now}, got)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(qByEmail).WithArgs("ghost@x.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserByID(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(qByID).WithArgs("u-1").WillReturnRows(userRows(now))

	got, err := repo.GetUserByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestGetUserByID_Errors(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(qByID).WithArgs("gone").WillReturnError(sql.ErrNoRows)
	_, err := repo.GetUserByID(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectQuery(qByID).WithArgs("u-1").WillReturnError(errors.New("db err"))
	_, err = repo.GetUserByID(context.Background(), "u-1")
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db err`, err.Error())
}

func TestExistsByEmail(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(qExists).WithArgs(testEmail).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.ExistsByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(qExists).WithArgs("b@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	ok, err = repo.ExistsByEmail(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectQuery(qExists).WithArgs(testEmail).WillReturnError(errors.New("boom"))
	_, err = repo.ExistsByEmail(context.Background(), testEmail)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
