package server

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	migrateErr error
	migrated   bool
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}

func (m *fakeManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "k"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.BcryptCost = 4
	c.ShutdownTimeout = time.Second
	return c
}

func stubDeps(t *testing.T, m *fakeManager) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	origOpen, origManager, origOut := openDB, newRepositoryManager, logOutput
	openDB = func(string) (*sql.DB, error) { return db, nil }
	newRepositoryManager = func() repomanager.RepositoryManager { return m }
	logOutput = io.Discard
	t.Cleanup(func() {
		openDB, newRepositoryManager, logOutput = origOpen, origManager, origOut
	})
	return mock
}

func TestNewApp_Success(t *testing.T) {
	m := &fakeManager{}
	mock := stubDeps(t, m)
	mock.ExpectPing()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	assert.NotNil(t, app.userService)
	assert.True(t, m.migrated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		stubDeps(t, &fakeManager{})
		c := testConfig()
		c.SecretKey = ""
		_, err := NewApp(context.Background(), c)
		assert.ErrorIs(t, err, common.ErrMissingSecret)
	})

	t.Run("bad log format", func(t *testing.T) {
		stubDeps(t, &fakeManager{})
		c := testConfig()
		c.LogFormat = "xml"
		_, err := NewApp(context.Background(), c)
		assert.Error(t, err)
	})

	t.Run("ping fails", func(t *testing.T) {
		mock := stubDeps(t, &fakeManager{})
		mock.ExpectPing().WillReturnError(errors.New("refused"))
		mock.ExpectClose()
		_, err := NewApp(context.Background(), testConfig())
		assert.ErrorContains(t, err, "db ping error")
	})

	t.Run("migrations fail", func(t *testing.T) {
		mock := stubDeps(t, &fakeManager{migrateErr: errors.New("boom")})
		mock.ExpectPing()
		mock.ExpectClose()
		_, err := NewApp(context.Background(), testConfig())
		assert.ErrorContains(t, err, "migrations error")
	})

	t.Run("open fails", func(t *testing.T) {
		stubDeps(t, &fakeManager{})
		openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
		_, err := NewApp(context.Background(), testConfig())
		assert.ErrorContains(t, err, "db init error")
	})
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	mock := stubDeps(t, &fakeManager{})
	mock.ExpectPing()
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	// health pings from the gRPC server are not expected and just report NOT_SERVING
	mock.MatchExpectationsInOrder(false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_RunStopsWhenServerFails(t *testing.T) {
	mock := stubDeps(t, &fakeManager{})
	mock.ExpectPing()
	mock.ExpectClose()

	c := testConfig()
	c.EndpointAddrGRPC = ""
	c.EndpointAddrHTTP = "127.0.0.1:99999"
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after listen failure")
	}
}
