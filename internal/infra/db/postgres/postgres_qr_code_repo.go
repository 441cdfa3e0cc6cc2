package postgres

import (
	"context"
	"fmt"

	"shopify-qr-codes/internal/domain"
	"shopify-qr-codes/internal/domain/model"
	"shopify-qr-codes/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.QRCodeRepository = (*PostgresQRCodeRepo)(nil)

type PostgresQRCodeRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresQRCodeRepo(pool *pgxpool.Pool) *PostgresQRCodeRepo {
	return &PostgresQRCodeRepo{pool: pool}
}

const qrCodeColumns = `id, shop, title, product_id, product_variant_id, handle, destination, scans, created_at`

func scanQRCode(row pgx.Row) (*model.QRCode, error) {
	var q model.QRCode
	err := row.Scan(&q.ID, &q.Shop, &q.Title, &q.ProductID, &q.ProductVariantID,
		&q.Handle, &q.Destination, &q.Scans, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *PostgresQRCodeRepo) Create(ctx context.Context, qr *model.QRCode) error {
	const sql = `
INSERT INTO qr_codes (shop, title, product_id, product_variant_id, handle, destination, scans, created_at)
VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
RETURNING id;
`
	err := r.pool.QueryRow(ctx, sql,
		qr.Shop, qr.Title, qr.ProductID, qr.ProductVariantID, qr.Handle, qr.Destination, qr.CreatedAt,
	).Scan(&qr.ID)
	if err != nil {
		return fmt.Errorf("Create qr code: %w", err)
	}
	return nil
}

func (r *PostgresQRCodeRepo) FindByID(ctx context.Context, id int64) (*model.QRCode, error) {
	sql := `SELECT ` + qrCodeColumns + ` FROM qr_codes WHERE id = $1;`
	q, err := scanQRCode(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID qr code: %w", err)
	}
	return q, nil
}

func (r *PostgresQRCodeRepo) ListByShop(ctx context.Context, shop string) ([]*model.QRCode, error) {
	sql := `SELECT ` + qrCodeColumns + ` FROM qr_codes WHERE shop = $1 ORDER BY created_at DESC, id DESC;`
	rows, err := r.pool.Query(ctx, sql, shop)
	if err != nil {
		return nil, fmt.Errorf("ListByShop qr codes: %w", err)
	}
	defer rows.Close()
	out := []*model.QRCode{}
	for rows.Next() {
		q, err := scanQRCode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *PostgresQRCodeRepo) FindFirstByHandle(ctx context.Context, shop, handle string) (*model.QRCode, error) {
	sql := `SELECT ` + qrCodeColumns + ` FROM qr_codes
 WHERE shop = $1 AND handle = $2
 ORDER BY created_at DESC, id DESC
 LIMIT 1;`
	q, err := scanQRCode(r.pool.QueryRow(ctx, sql, shop, handle))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindFirstByHandle qr code: %w", err)
	}
	return q, nil
}

func (r *PostgresQRCodeRepo) FindFirstByProductID(ctx context.Context, shop, productID string) (*model.QRCode, error) {
	sql := `SELECT ` + qrCodeColumns + ` FROM qr_codes
 WHERE shop = $1 AND product_id = $2
 ORDER BY created_at DESC, id DESC
 LIMIT 1;`
	q, err := scanQRCode(r.pool.QueryRow(ctx, sql, shop, productID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindFirstByProductID qr code: %w", err)
	}
	return q, nil
}

// IncrementScans relies on the single-statement UPDATE for per-row atomicity;
// concurrent scans serialize on the row lock.
func (r *PostgresQRCodeRepo) IncrementScans(ctx context.Context, id int64) (int64, error) {
	const sql = `UPDATE qr_codes SET scans = scans + 1 WHERE id = $1 RETURNING scans;`
	var scans int64
	if err := r.pool.QueryRow(ctx, sql, id).Scan(&scans); err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("IncrementScans qr code: %w", err)
	}
	return scans, nil
}
