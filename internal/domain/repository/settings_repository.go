package repository

import (
	"context"

	"github.com/sellerdesk/margin-api/internal/domain/entity"
)

// SettingsRepository persistence port for MerchantSettings.
// GetByMerchant returns (nil, nil) when the merchant has no settings row;
// callers fall back to the configured defaults (tax percent 3.0).
type SettingsRepository interface {
	GetByMerchant(ctx context.Context, merchantID string) (*entity.MerchantSettings, error)
	Upsert(ctx context.Context, s *entity.MerchantSettings) error
}
