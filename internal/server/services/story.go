package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/dmitrijs2005/storyshare/internal/server/models"
	"github.com/dmitrijs2005/storyshare/internal/server/repositories/stories"
)

// ImageRemover deletes stored images.
type ImageRemover interface {
	Delete(ctx context.Context, path string) error
}

// StoryInput is a create or update request after the upload was stored.
type StoryInput struct {
	Title   string
	Content string
	Date    string
	// Upload is the stored path of the image sent with this request.
	Upload string
}

// StoryService keeps every operation scoped to the calling user.
type StoryService struct {
	stories stories.Repository
	images  ImageRemover
	logger  logging.Logger
}

func NewStoryService(repo stories.Repository, img ImageRemover, l logging.Logger) *StoryService {
	return &StoryService{
		stories: repo,
		images:  img,
		logger:  l.With("module", "story_service"),
	}
}

func (s *StoryService) List(ctx context.Context, userID string) ([]*models.Story, error) {
	list, err := s.stories.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing stories: %w", err)
	}
	if list == nil {
		list = []*models.Story{}
	}
	return list, nil
}

func (s *StoryService) Create(ctx context.Context, userID string, in StoryInput) (*models.Story, error) {
	if in.Title == "" || in.Content == "" || in.Upload == "" || in.Date == "" {
		s.discard(ctx, in.Upload)
		return nil, fmt.Errorf("%w: title, content, image and date are required", common.ErrorValidation)
	}

	story, err := s.stories.Create(ctx, &models.Story{
		Title:   in.Title,
		Content: in.Content,
		Image:   in.Upload,
		Date:    in.Date,
		UserID:  userID,
	})
	if err != nil {
		s.discard(ctx, in.Upload)
		return nil, fmt.Errorf("error creating story: %w", err)
	}

	s.logger.Info(ctx, "story created", "story_id", story.ID, "user_id", userID)
	return story, nil
}

// Update replaces title and content. The image changes only when a new file
// was uploaded with the request.
func (s *StoryService) Update(ctx context.Context, userID, id string, in StoryInput) (*models.Story, error) {
	if in.Title == "" || in.Content == "" {
		s.discard(ctx, in.Upload)
		return nil, fmt.Errorf("%w: title and content are required", common.ErrorValidation)
	}

	story, err := s.stories.UpdateOwned(ctx, id, userID, models.StoryChanges{
		Title:   in.Title,
		Content: in.Content,
		Image:   in.Upload,
	})
	if err != nil {
		s.discard(ctx, in.Upload)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating story: %w", err)
	}

	return story, nil
}

// Delete removes the record, then its image. A failed image removal is only
// logged.
func (s *StoryService) Delete(ctx context.Context, userID, id string) error {
	story, err := s.stories.DeleteOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error deleting story: %w", err)
	}

	if story.Image != "" {
		if err := s.images.Delete(ctx, story.Image); err != nil {
			s.logger.Warn(ctx, "error deleting image", "path", story.Image, "error", err)
		}
	}

	s.logger.Info(ctx, "story deleted", "story_id", story.ID, "user_id", userID)
	return nil
}

func (s *StoryService) discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.images.Delete(ctx, path); err != nil {
		s.logger.Warn(ctx, "error discarding upload", "path", path, "error", err)
	}
}
