// Package rest exposes the storyshare JSON API over HTTP.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/dmitrijs2005/storyshare/internal/server/models"
	"github.com/dmitrijs2005/storyshare/internal/server/services"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// ShutdownTimeout bounds how long in-flight requests may take after a stop.
const ShutdownTimeout = 10 * time.Second

type UserService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

type StoryService interface {
	List(ctx context.Context, userID string) ([]*models.Story, error)
	Create(ctx context.Context, userID string, in services.StoryInput) (*models.Story, error)
	Update(ctx context.Context, userID, id string, in services.StoryInput) (*models.Story, error)
	Delete(ctx context.Context, userID, id string) error
}

type ContactService interface {
	Submit(ctx context.Context, c *models.Contact) error
}

// TokenVerifier resolves a session token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Uploader stores the image of a story request and returns its path.
type Uploader interface {
	Receive(r *http.Request) (string, error)
}

// Deps are the collaborators a Server dispatches to. Images is optional and
// serves stored files when set.
type Deps struct {
	Users    UserService
	Stories  StoryService
	Contacts ContactService
	Tokens   TokenVerifier
	Uploader Uploader
	Images   http.Handler
}

type Server struct {
	address       string
	allowedOrigin string
	deps          Deps
	logger        logging.Logger
}

func NewServer(address, allowedOrigin string, l logging.Logger, deps Deps) *Server {
	return &Server{
		address:       address,
		allowedOrigin: allowedOrigin,
		deps:          deps,
		logger:        l.With("module", "http_server"),
	}
}

// Handler returns the fully wrapped API handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/contact", s.handleContact).Methods(http.MethodPost)

	st := api.PathPrefix("/stories").Subrouter()
	st.Use(s.authenticate)
	st.HandleFunc("", s.handleListStories).Methods(http.MethodGet)
	st.HandleFunc("", s.handleCreateStory).Methods(http.MethodPost)
	st.HandleFunc("/{id}", s.handleUpdateStory).Methods(http.MethodPut)
	st.HandleFunc("/{id}", s.handleDeleteStory).Methods(http.MethodDelete)

	if s.deps.Images != nil {
		r.PathPrefix("/uploads/").Handler(s.deps.Images).Methods(http.MethodGet, http.MethodHead)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{s.allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return s.recoverer(s.logRequests(c.Handler(r)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped
	return nil
}
