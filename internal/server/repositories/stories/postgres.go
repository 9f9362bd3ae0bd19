package stories

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/dbx"
	"github.com/dmitrijs2005/storyshare/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByUser returns the caller's stories in creation order. The result is
// never nil.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Story, error) {
	result := make([]*models.Story, 0)

	// ids that are not uuids cannot own anything here
	if _, err := uuid.Parse(userID); err != nil {
		return result, nil
	}

	query := `SELECT id, title, content, image, date, user_id FROM stories
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Story
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.Image, &item.Date, &item.UserID); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, story *models.Story) (*models.Story, error) {
	query := `INSERT INTO stories (id, user_id, title, content, image, date)
		VALUES ($1, $2, $3, $4, $5, $6)`

	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, query, id, story.UserID, story.Title, story.Content, story.Image, story.Date); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	story.ID = id
	return story, nil
}

// UpdateOwned replaces title and content. An empty changes.Image keeps the
// stored image path.
func (r *PostgresRepository) UpdateOwned(ctx context.Context, id, userID string, changes models.StoryChanges) (*models.Story, error) {
	if !validIDs(id, userID) {
		return nil, common.ErrorNotFound
	}

	query := `UPDATE stories
		SET title = $3, content = $4, image = COALESCE(NULLIF($5, ''), image)
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, content, image, date, user_id`

	story := &models.Story{}
	err := r.db.QueryRowContext(ctx, query, id, userID, changes.Title, changes.Content, changes.Image).
		Scan(&story.ID, &story.Title, &story.Content, &story.Image, &story.Date, &story.UserID)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return story, nil
}

// DeleteOwned removes the story and returns it as it was stored.
func (r *PostgresRepository) DeleteOwned(ctx context.Context, id, userID string) (*models.Story, error) {
	if !validIDs(id, userID) {
		return nil, common.ErrorNotFound
	}

	query := `DELETE FROM stories
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, content, image, date, user_id`

	story := &models.Story{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&story.ID, &story.Title, &story.Content, &story.Image, &story.Date, &story.UserID)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return story, nil
}

func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
