package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopline/catalog-service/internal/domain"
)

type pgProductRepository struct {
	pool pgxQuerier
}

// NewPostgresProductRepository returns a Postgres-backed implementation.
func NewPostgresProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &pgProductRepository{pool: pool}
}

func (r *pgProductRepository) Find(ctx context.Context, titleFilter string) ([]domain.Product, error) {
	query := `SELECT id, title, price FROM products`
	args := []any{}
	if titleFilter != "" {
		query += ` WHERE title ILIKE $1`
		args = append(args, containsPattern(titleFilter))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, persistenceErr("products.find", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price); err != nil {
			return nil, persistenceErr("products.find", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("products.find", err)
	}
	return products, nil
}

func (r *pgProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `SELECT id, title, price FROM products WHERE id=$1`

	var p domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, persistenceErr("products.get", err)
	}
	return &p, nil
}

func (r *pgProductRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `INSERT INTO products (id, title, price) VALUES ($1, $2, $3)`

	if _, err := r.pool.Exec(ctx, query, product.ID, product.Title, product.Price); err != nil {
		if isUniqueViolation(err) {
			return duplicateKeyErr("products.create", err)
		}
		return persistenceErr("products.create", err)
	}
	return nil
}

func (r *pgProductRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	const query = `
        UPDATE products SET
            title = COALESCE($2::text, title),
            price = COALESCE($3::double precision, price)
        WHERE id=$1
        RETURNING id, title, price`

	var p domain.Product
	if err := r.pool.QueryRow(ctx, query, id, patch.Title, patch.Price).Scan(&p.ID, &p.Title, &p.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, persistenceErr("products.update", err)
	}
	return &p, nil
}

func (r *pgProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, persistenceErr("products.delete", err)
	}
	return cmd.RowsAffected() == 1, nil
}
