package repositories

import (
	"context"

	"github.com/google/uuid"
	"invest-desk.backend/internal/domain/entities"
)

// ListUsersParams are the accepted list filters for users.
type ListUsersParams struct {
	Search    string `form:"search"`
	Verified  string `form:"verified"`
	Sort      string `form:"sort"`
	Direction string `form:"direction"`
	Page      int    `form:"page"`
}

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, params ListUsersParams, limit, offset int) ([]*entities.User, int64, error)
	Update(ctx context.Context, user *entities.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}
