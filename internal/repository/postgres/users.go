package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/danilloubr/workplace-tasks-challenge/internal/models"
	"github.com/danilloubr/workplace-tasks-challenge/internal/repository"
)

type userRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewUserRepository(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) repository.UserRepository {
	return &userRepositoryImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (*models.User, error) {
	const selectUserByIDQuery = `
SELECT email,
       password_hash,
       role,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	user := models.User{ID: id}
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to select user by id")
		return nil, err
	}
	r.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user by id")

	return &user, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserByEmailQuery = `
SELECT id,
       password_hash,
       role,
       created_at,
       updated_at
FROM users
WHERE email = $1
`
	user := models.User{Email: email}
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to select user by email")
		return nil, err
	}
	r.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("selected user by email")

	return &user, nil
}

func (r *userRepositoryImpl) List(ctx context.Context) ([]*models.User, error) {
	const selectUsersQuery = `
SELECT id,
       email,
       password_hash,
       role,
       created_at,
       updated_at
FROM users
ORDER BY created_at
`
	rows, err := r.pgPool.Query(ctx, selectUsersQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := new(models.User)
		err = rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan user")
			return nil, err
		}
		users = append(users, user)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int("count", len(users)).
		Msg("selected users")

	return users, nil
}

func (r *userRepositoryImpl) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	// id is a UUID column; comparing through text keeps the parameter
	// untyped so an empty excludeID (no user to exclude) matches every
	// row instead of failing uuid conversion.
	const selectEmailTakenQuery = `
SELECT EXISTS (
    SELECT 1
    FROM users
    WHERE email = $1 AND
          id::text <> $2
)
`
	var taken bool
	err := r.pgPool.QueryRow(
		ctx,
		selectEmailTakenQuery,
		email,
		excludeID,
	).Scan(&taken)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to check email existence")
		return false, err
	}

	return taken, nil
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   email,
                   password_hash,
                   role,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}

		r.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return err
	}
	r.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("inserted user")

	return nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	const updateUserQuery = `
UPDATE users
SET email = $1,
    password_hash = $2,
    role = $3,
    updated_at = $4
WHERE id = $5
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateUserQuery,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}

		r.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to update user")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Str("user_id", user.ID).
		Msg("updated user")

	return nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	const deleteUserQuery = `
DELETE FROM users
WHERE id = $1
`
	tag, err := r.pgPool.Exec(
		ctx,
		deleteUserQuery,
		id,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to delete user")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Str("user_id", id).
		Msg("deleted user")

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
