package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/dmitrijs2005/storyshare/internal/server/auth"
	"github.com/dmitrijs2005/storyshare/internal/server/images"
	"github.com/dmitrijs2005/storyshare/internal/server/models"
	"github.com/dmitrijs2005/storyshare/internal/server/services"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testOrigin = "https://frontend.example.com"
)

// --- in-memory stores ---

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (m *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return nil, common.ErrorDuplicateUser
	}
	u.ID = fmt.Sprintf("u%d", len(m.users)+1)
	m.users[u.Email] = u
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type memStories struct {
	mu    sync.Mutex
	items []*models.Story
	seq   int
}

func (m *memStories) ListByUser(_ context.Context, userID string) ([]*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Story, 0)
	for _, s := range m.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStories) Create(_ context.Context, s *models.Story) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	s.ID = fmt.Sprintf("s%d", m.seq)
	m.items = append(m.items, s)
	return s, nil
}

func (m *memStories) UpdateOwned(_ context.Context, id, userID string, ch models.StoryChanges) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.items {
		if s.ID == id && s.UserID == userID {
			s.Title, s.Content = ch.Title, ch.Content
			if ch.Image != "" {
				s.Image = ch.Image
			}
			return s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memStories) DeleteOwned(_ context.Context, id, userID string) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.items {
		if s.ID == id && s.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return s, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memContacts struct {
	saved []*models.Contact
	err   error
}

func (m *memContacts) Create(_ context.Context, c *models.Contact) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, c)
	return nil
}

// --- fixture ---

type fixture struct {
	handler  http.Handler
	storage  *images.LocalStorage
	stories  *memStories
	contacts *memContacts
	tokens   *auth.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	storage, err := images.NewLocalStorage(filepath.Join(t.TempDir(), "uploads"), logging.Nop{})
	require.NoError(t, err)

	l := logging.Nop{}
	tokens := auth.NewTokenService(testSecret, time.Hour)
	st := &memStories{}
	ct := &memContacts{}

	srv := NewServer(":0", testOrigin, l, Deps{
		Users:    services.NewUserService(&memUsers{users: map[string]*models.User{}}, tokens, l),
		Stories:  services.NewStoryService(st, storage, l),
		Contacts: services.NewContactService(ct, l),
		Tokens:   tokens,
		Uploader: images.NewUploader(storage),
		Images:   storage.Handler(),
	})

	return &fixture{handler: srv.Handler(), storage: storage, stories: st, contacts: ct, tokens: tokens}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type upload struct {
	filename, contentType, body string
}

func storyRequest(t *testing.T, method, target, token string, fields map[string]string, img *upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if img != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+img.filename+`"`)
		h.Set("Content-Type", img.contentType)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte(img.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[messageResponse](t, rec).Message
}

// login signs a user up, logs in and returns the token and user id.
func (f *fixture) login(t *testing.T, email string) (string, string) {
	t.Helper()
	creds := map[string]string{"email": email, "password": "pw123456"}

	rec := f.do(jsonRequest(t, http.MethodPost, "/api/auth/signup", creds))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(jsonRequest(t, http.MethodPost, "/api/auth/login", creds))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[services.LoginResult](t, rec)
	return res.Token, res.User.ID
}

func pngUpload(name string) *upload {
	return &upload{filename: name, contentType: "image/png", body: "\x89PNG fake"}
}
