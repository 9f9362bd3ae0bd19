// Package repomanager selects the storage backend from the database DSN and
// vends the repositories bound to it.
package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storyshare/internal/server/config"
	"github.com/dmitrijs2005/storyshare/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/storyshare/internal/server/repositories/stories"
	"github.com/dmitrijs2005/storyshare/internal/server/repositories/users"
)

// RepositoryManager owns a store handle for the lifetime of the process.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Stories() stories.Repository
	Contacts() contacts.Repository
	Close(ctx context.Context) error
}

// Backend names derived from the DSN scheme.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// seams for tests
var (
	openPostgres = func(ctx context.Context, dsn string) (RepositoryManager, error) {
		m, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	openMongo = func(ctx context.Context, dsn, dbName string) (RepositoryManager, error) {
		m, err := OpenMongo(ctx, dsn, dbName)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
)

// Backend reports which store a DSN addresses.
func Backend(dsn string) (string, error) {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return "", fmt.Errorf("database dsn has no scheme")
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

// New connects to the configured database and returns its manager.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	backend, err := Backend(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if backend == BackendMongo {
		return openMongo(ctx, cfg.DatabaseDSN, cfg.DatabaseName)
	}
	return openPostgres(ctx, cfg.DatabaseDSN)
}
