package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopline/catalog-service/internal/domain"
)

const userColumns = `id, email, password_hash, first_name, last_name, created_at, updated_at`

type pgUserRepository struct {
	pool pgxQuerier
}

// NewPostgresUserRepository returns a Postgres-backed implementation.
func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) Find(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, persistenceErr("users.find", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, persistenceErr("users.find", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("users.find", err)
	}
	return users, nil
}

func (r *pgUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, persistenceErr("users.get", err)
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, email, password_hash, first_name, last_name, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateKeyErr("users.create", err)
		}
		return persistenceErr("users.create", err)
	}
	return nil
}

func (r *pgUserRepository) Update(ctx context.Context, id string, changes domain.UserChanges) (*domain.User, error) {
	const query = `
        UPDATE users SET
            email = COALESCE($2::text, email),
            password_hash = COALESCE($3::text, password_hash),
            first_name = COALESCE($4::text, first_name),
            last_name = COALESCE($5::text, last_name),
            updated_at = GREATEST(updated_at, $6)
        WHERE id=$1
        RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		id,
		changes.Email,
		changes.PasswordHash,
		changes.FirstName,
		changes.LastName,
		changes.UpdatedAt,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		case isUniqueViolation(err):
			return nil, duplicateKeyErr("users.update", err)
		}
		return nil, persistenceErr("users.update", err)
	}
	return user, nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, persistenceErr("users.delete", err)
	}
	return cmd.RowsAffected() == 1, nil
}
