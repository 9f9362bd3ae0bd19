package contacts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storyshare/internal/dbx"
	"github.com/dmitrijs2005/storyshare/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) error {
	query :=
		`INSERT INTO contacts (id, name, email, subject, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`

	id := uuid.NewString()
	err := r.db.QueryRowContext(ctx, query, id, contact.Name, contact.Email, contact.Subject, contact.Message).
		Scan(&contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	contact.ID = id
	return nil
}
