package repository

import (
	"context"

	"github.com/sellerdesk/margin-api/internal/domain/entity"
)

// ProductRepository persistence port for Product cost profiles.
// Create must rely on the (merchant_id, sku) uniqueness constraint and
// surface a duplicate insert as domain.ErrDuplicate so concurrent imports
// cannot produce two profiles for the same SKU.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	FindBySKU(ctx context.Context, merchantID, sku string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*entity.Product, error)
}
