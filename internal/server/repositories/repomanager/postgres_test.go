package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func TestPostgresManager_VendsRepositories(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager(db)

	assert.NotNil(t, m.Users())
	assert.NotNil(t, m.Stories())
	assert.NotNil(t, m.Contacts())
	assert.Same(t, m.Users(), m.Users())
}

func TestPostgresManager_RunMigrations(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		if got != db {
			return errors.New("unexpected db")
		}
		return nil
	}

	m := NewPostgresRepositoryManager(db)
	require.NoError(t, m.RunMigrations(context.Background()))
	assert.Equal(t, ".", gotDir)
}

func TestPostgresManager_RunMigrationsError(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	err := NewPostgresRepositoryManager(db).RunMigrations(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestPostgresManager_Close(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectClose()

	require.NoError(t, NewPostgresRepositoryManager(db).Close(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
