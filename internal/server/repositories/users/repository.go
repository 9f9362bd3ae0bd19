package users

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/server/models"
)

// Repository persists credentials. Create reports common.ErrorDuplicateUser
// when the email is already taken; GetUserByEmail reports common.ErrorNotFound
// when it is not.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
