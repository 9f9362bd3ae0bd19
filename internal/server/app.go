// Package server initializes and runs the storyshare API server.
// It wires configuration, storage backends and the HTTP layer, and handles
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/dmitrijs2005/storyshare/internal/server/auth"
	"github.com/dmitrijs2005/storyshare/internal/server/config"
	"github.com/dmitrijs2005/storyshare/internal/server/images"
	"github.com/dmitrijs2005/storyshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storyshare/internal/server/rest"
	"github.com/dmitrijs2005/storyshare/internal/server/services"
)

const closeTimeout = 5 * time.Second

// seams for tests
var (
	newRepositoryManager = repomanager.New
	newImageStorage      = images.NewStorage
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *rest.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	storage, err := newImageStorage(ctx, c, logger)
	if err != nil {
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("image storage init error: %w", err)
	}

	tokens := auth.NewTokenService(c.SecretKey, c.AccessTokenValidityDuration)

	deps := rest.Deps{
		Users:    services.NewUserService(repos.Users(), tokens, logger),
		Stories:  services.NewStoryService(repos.Stories(), storage, logger),
		Contacts: services.NewContactService(repos.Contacts(), logger),
		Tokens:   tokens,
		Uploader: images.NewUploader(storage),
	}
	if local, ok := storage.(*images.LocalStorage); ok {
		deps.Images = local.Handler()
	}

	server := rest.NewServer(c.EndpointAddrHTTP, c.AllowedOrigin, logger, deps)

	return &App{config: c, logger: logger, repos: repos, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a signal arrives or ctx is cancelled, then closes the
// store handle.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := app.repos.Close(closeCtx); err != nil {
		app.logger.Error(closeCtx, "error closing database", "error", err)
	}

	app.logger.Info(closeCtx, "App stopped")
}
