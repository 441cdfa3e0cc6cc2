package postgres

import (
	"context"
	"errors"
	"fmt"

	"shopify-qr-codes/internal/domain"
	"shopify-qr-codes/internal/domain/model"
	"shopify-qr-codes/internal/domain/ports/repository"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.DiscountRepository = (*PostgresDiscountRepo)(nil)

type PostgresDiscountRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresDiscountRepo(pool *pgxpool.Pool) *PostgresDiscountRepo {
	return &PostgresDiscountRepo{pool: pool}
}

func (r *PostgresDiscountRepo) Save(ctx context.Context, d *model.ProductDiscount) error {
	const sql = `
INSERT INTO product_discounts (id, shop, title, percentage, product_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
	_, err := r.pool.Exec(ctx, sql, d.ID, d.Shop, d.Title, d.Percentage, d.ProductID, d.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("Save discount: %w", err)
	}
	return nil
}

func (r *PostgresDiscountRepo) FindByID(ctx context.Context, id string) (*model.ProductDiscount, error) {
	const sql = `
SELECT id, shop, title, percentage, product_id, created_at
  FROM product_discounts
 WHERE id = $1;
`
	var d model.ProductDiscount
	err := r.pool.QueryRow(ctx, sql, id).Scan(&d.ID, &d.Shop, &d.Title, &d.Percentage, &d.ProductID, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID discount: %w", err)
	}
	return &d, nil
}

func (r *PostgresDiscountRepo) ListByShop(ctx context.Context, shop string) ([]*model.ProductDiscount, error) {
	const sql = `
SELECT id, shop, title, percentage, product_id, created_at
  FROM product_discounts
 WHERE shop = $1
 ORDER BY created_at DESC;
`
	rows, err := r.pool.Query(ctx, sql, shop)
	if err != nil {
		return nil, fmt.Errorf("ListByShop discounts: %w", err)
	}
	defer rows.Close()
	out := []*model.ProductDiscount{}
	for rows.Next() {
		var d model.ProductDiscount
		if err := rows.Scan(&d.ID, &d.Shop, &d.Title, &d.Percentage, &d.ProductID, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
