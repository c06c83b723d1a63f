package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios (auth).
type UserRepository interface {
	// Create falla con domain.ErrUsernameTaken si username o email ya existen.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}
