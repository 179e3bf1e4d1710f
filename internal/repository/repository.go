// Package repository declares the per-entity storage interfaces the
// services depend on. Implementations are injected at wiring time;
// the services never hold a database handle themselves.
package repository

import (
	"context"
	"errors"

	"github.com/danilloubr/workplace-tasks-challenge/internal/models"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateEmail is returned when a write would violate the
	// unique index on users.email.
	ErrDuplicateEmail = errors.New("duplicate email")
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)

	// EmailTaken reports whether a user other than excludeID already
	// holds the given email. Excluding the target's own id lets a user
	// re-submit their current email without a conflict.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)

	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}
