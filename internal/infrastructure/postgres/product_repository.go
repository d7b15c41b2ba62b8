package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sellerdesk/margin-api/internal/domain"
	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements the ProductRepository port on PostgreSQL (usable
// with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter. Pass pool or tx
// (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, merchant_id, sku, name, purchase_price, logistics_intl, logistics_local, other_expenses, commission_percent, created_at, updated_at`

// Create inserts a cost profile. The (merchant_id, sku) unique constraint
// maps to domain.ErrDuplicate, which the importer treats as already-present.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.MerchantID, p.SKU, p.Name,
		p.PurchasePrice, p.LogisticsIntl, p.LogisticsLocal, p.OtherExpenses, p.CommissionPercent,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// FindBySKU fetches a profile by merchant and SKU; (nil, nil) when absent.
func (r *ProductRepo) FindBySKU(ctx context.Context, merchantID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE merchant_id = $1 AND sku = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, merchantID, sku).Scan(
		&p.ID, &p.MerchantID, &p.SKU, &p.Name,
		&p.PurchasePrice, &p.LogisticsIntl, &p.LogisticsLocal, &p.OtherExpenses, &p.CommissionPercent,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}

// Update overwrites the mutable fields of a profile (cost components and
// name). SKU and merchant never change.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, purchase_price = $3, logistics_intl = $4, logistics_local = $5,
		    other_expenses = $6, commission_percent = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name,
		p.PurchasePrice, p.LogisticsIntl, p.LogisticsLocal, p.OtherExpenses, p.CommissionPercent,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByMerchant lists profiles with pagination, newest first.
func (r *ProductRepo) ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE merchant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, merchantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.MerchantID, &p.SKU, &p.Name,
			&p.PurchasePrice, &p.LogisticsIntl, &p.LogisticsLocal, &p.OtherExpenses, &p.CommissionPercent,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
