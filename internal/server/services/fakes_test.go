package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/server/models"
)

// --- in-memory repositories ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  int

	getErr    error
	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorDuplicateUser
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeStoriesRepo struct {
	items  []*models.Story
	nextID int
	err    error
}

func (f *fakeStoriesRepo) ListByUser(_ context.Context, userID string) ([]*models.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Story
	for _, s := range f.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoriesRepo) Create(_ context.Context, s *models.Story) (*models.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	s.ID = fmt.Sprintf("story-%d", f.nextID)
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeStoriesRepo) find(id, userID string) int {
	for i, s := range f.items {
		if s.ID == id && s.UserID == userID {
			return i
		}
	}
	return -1
}

func (f *fakeStoriesRepo) UpdateOwned(_ context.Context, id, userID string, ch models.StoryChanges) (*models.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	i := f.find(id, userID)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	s := f.items[i]
	s.Title, s.Content = ch.Title, ch.Content
	if ch.Image != "" {
		s.Image = ch.Image
	}
	return s, nil
}

func (f *fakeStoriesRepo) DeleteOwned(_ context.Context, id, userID string) (*models.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	i := f.find(id, userID)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	s := f.items[i]
	f.items = append(f.items[:i], f.items[i+1:]...)
	return s, nil
}

type fakeContactsRepo struct {
	saved []*models.Contact
	err   error
}

func (f *fakeContactsRepo) Create(_ context.Context, c *models.Contact) error {
	if f.err != nil {
		return f.err
	}
	c.ID = fmt.Sprintf("contact-%d", len(f.saved)+1)
	f.saved = append(f.saved, c)
	return nil
}

type fakeImages struct {
	deleted []string
	err     error
}

func (f *fakeImages) Delete(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return f.err
}
