package auth

import (
	"context"
	"io"

	"prodflow/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}

// AvatarStore persists avatar bytes under a named subdirectory and returns
// the storage path.
type AvatarStore interface {
	Save(ctx context.Context, dir, filename string, r io.Reader) (string, error)
}
