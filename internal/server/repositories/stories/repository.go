package stories

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/server/models"
)

// Repository persists stories. Every read-modify operation is scoped by
// (id, userID): a story owned by someone else is indistinguishable from a
// missing one and both yield common.ErrorNotFound.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Story, error)
	Create(ctx context.Context, story *models.Story) (*models.Story, error)
	UpdateOwned(ctx context.Context, id, userID string, changes models.StoryChanges) (*models.Story, error)
	DeleteOwned(ctx context.Context, id, userID string) (*models.Story, error)
}
