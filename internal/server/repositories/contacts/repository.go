package contacts

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/server/models"
)

// Repository persists contact-form submissions. Submissions are write-only.
type Repository interface {
	Create(ctx context.Context, contact *models.Contact) error
}
