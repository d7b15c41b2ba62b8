package repository

import (
	"context"
	"time"

	"github.com/sellerdesk/margin-api/internal/domain/entity"
)

// OrderWithProduct is one row of the dashboard read: an order joined with
// its cost profile. Product is nil when no profile matches the order's SKU.
type OrderWithProduct struct {
	Order   entity.Order
	Product *entity.Product
}

// OrderRepository persistence port for imported orders. Orders are
// insert-only; Create must map a (merchant_id, kaspi_order_id) duplicate to
// domain.ErrDuplicate, which the importer treats as "already imported".
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	FindByKaspiID(ctx context.Context, merchantID, kaspiOrderID string) (*entity.Order, error)
	// ListWithProducts returns the merchant's orders with order_date >= since,
	// left-joined with products on SKU.
	ListWithProducts(ctx context.Context, merchantID string, since time.Time) ([]OrderWithProduct, error)
}
