package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implements the SettingsRepository port on PostgreSQL.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository builds the persistence adapter.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetByMerchant fetches the merchant's settings row; (nil, nil) when the
// merchant never saved settings.
func (r *SettingsRepo) GetByMerchant(ctx context.Context, merchantID string) (*entity.MerchantSettings, error) {
	query := `
		SELECT id, merchant_id, company_name, tax_percent, sheet_url, created_at, updated_at
		FROM merchant_settings WHERE merchant_id = $1`
	var s entity.MerchantSettings
	err := r.q.QueryRow(ctx, query, merchantID).Scan(
		&s.ID, &s.MerchantID, &s.CompanyName, &s.TaxPercent, &s.SheetURL, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert writes the settings row, keyed by the merchant_id unique
// constraint.
func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.MerchantSettings) error {
	query := `
		INSERT INTO merchant_settings (id, merchant_id, company_name, tax_percent, sheet_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (merchant_id) DO UPDATE
		SET company_name = EXCLUDED.company_name,
		    tax_percent = EXCLUDED.tax_percent,
		    sheet_url = EXCLUDED.sheet_url,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.MerchantID, s.CompanyName, s.TaxPercent, s.SheetURL, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
