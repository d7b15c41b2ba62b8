package repository

import (
	"context"

	"github.com/sellerdesk/margin-api/internal/domain/entity"
)

// MerchantRepository persistence port for Merchant.
// Implementations return (nil, nil) when a record does not exist.
type MerchantRepository interface {
	Create(ctx context.Context, m *entity.Merchant) error
	FindByID(ctx context.Context, id string) (*entity.Merchant, error)
	FindByEmail(ctx context.Context, email string) (*entity.Merchant, error)
}
