package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sellerdesk/margin-api/internal/domain"
	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements the OrderRepository port on PostgreSQL (usable with
// pool or tx). Orders are insert-only.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the persistence adapter. Pass pool or tx
// (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, merchant_id, kaspi_order_id, sku, product_name, amount, status, order_date, quantity, delivery_cost, created_at`

// Create inserts an imported order. The (merchant_id, kaspi_order_id)
// unique constraint maps to domain.ErrDuplicate so a concurrent import of
// the same export cannot double-insert.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.MerchantID, o.KaspiOrderID, o.SKU, o.ProductName,
		o.Amount, o.Status, o.OrderDate, o.Quantity, o.DeliveryCost, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// FindByKaspiID fetches an order by its marketplace id; (nil, nil) when
// absent.
func (r *OrderRepo) FindByKaspiID(ctx context.Context, merchantID, kaspiOrderID string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE merchant_id = $1 AND kaspi_order_id = $2`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, merchantID, kaspiOrderID).Scan(
		&o.ID, &o.MerchantID, &o.KaspiOrderID, &o.SKU, &o.ProductName,
		&o.Amount, &o.Status, &o.OrderDate, &o.Quantity, &o.DeliveryCost, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by kaspi id: %w", err)
	}
	return &o, nil
}

// ListWithProducts returns the merchant's orders since the given time,
// left-joined with the cost profile on SKU. Orders without a profile come
// back with Product == nil.
func (r *OrderRepo) ListWithProducts(ctx context.Context, merchantID string, since time.Time) ([]repository.OrderWithProduct, error) {
	query := `
		SELECT o.id, o.merchant_id, o.kaspi_order_id, o.sku, o.product_name,
		       o.amount, o.status, o.order_date, o.quantity, o.delivery_cost, o.created_at,
		       p.id, p.name, p.purchase_price, p.logistics_intl, p.logistics_local,
		       p.other_expenses, p.commission_percent
		FROM orders o
		LEFT JOIN products p ON p.merchant_id = o.merchant_id AND p.sku = o.sku
		WHERE o.merchant_id = $1 AND o.order_date >= $2
		ORDER BY o.order_date`
	rows, err := r.q.Query(ctx, query, merchantID, since)
	if err != nil {
		return nil, fmt.Errorf("list orders with products: %w", err)
	}
	defer rows.Close()

	var list []repository.OrderWithProduct
	for rows.Next() {
		var o entity.Order
		// Nullable product columns from the LEFT JOIN.
		var pID, pName *string
		var purchase, logIntl, logLocal, other, commission *decimal.Decimal
		if err := rows.Scan(
			&o.ID, &o.MerchantID, &o.KaspiOrderID, &o.SKU, &o.ProductName,
			&o.Amount, &o.Status, &o.OrderDate, &o.Quantity, &o.DeliveryCost, &o.CreatedAt,
			&pID, &pName, &purchase, &logIntl, &logLocal, &other, &commission,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		row := repository.OrderWithProduct{Order: o}
		if pID != nil {
			row.Product = &entity.Product{
				ID:                *pID,
				MerchantID:        o.MerchantID,
				SKU:               o.SKU,
				Name:              deref(pName),
				PurchasePrice:     derefDec(purchase),
				LogisticsIntl:     derefDec(logIntl),
				LogisticsLocal:    derefDec(logLocal),
				OtherExpenses:     derefDec(other),
				CommissionPercent: derefDec(commission),
			}
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefDec(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
