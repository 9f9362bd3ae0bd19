package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/dmitrijs2005/storyshare/internal/server/models"
	"github.com/dmitrijs2005/storyshare/internal/server/repositories/contacts"
)

type ContactService struct {
	contacts contacts.Repository
	logger   logging.Logger
}

func NewContactService(repo contacts.Repository, l logging.Logger) *ContactService {
	return &ContactService{contacts: repo, logger: l.With("module", "contact_service")}
}

// Submit stores the submission as sent.
func (s *ContactService) Submit(ctx context.Context, c *models.Contact) error {
	if err := s.contacts.Create(ctx, c); err != nil {
		return fmt.Errorf("error saving contact: %w", err)
	}
	s.logger.Info(ctx, "contact received", "contact_id", c.ID)
	return nil
}
