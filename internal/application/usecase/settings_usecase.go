package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerdesk/margin-api/internal/application/dto"
	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
)

// SettingsUseCase read/update of merchant settings. The tax percent stored
// here feeds the profit formula; merchants without a row see the default.
type SettingsUseCase struct {
	repo       repository.SettingsRepository
	defaultTax decimal.Decimal
}

// NewSettingsUseCase builds the use case.
func NewSettingsUseCase(repo repository.SettingsRepository, defaultTax decimal.Decimal) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, defaultTax: defaultTax}
}

// Get returns the merchant's settings, or a default view (tax 3.0, empty
// names) when nothing was saved yet.
func (uc *SettingsUseCase) Get(ctx context.Context, merchantID string) (*dto.SettingsResponse, error) {
	s, err := uc.repo.GetByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &dto.SettingsResponse{TaxPercent: uc.defaultTax}, nil
	}
	return &dto.SettingsResponse{
		CompanyName: s.CompanyName,
		TaxPercent:  s.TaxPercent,
		SheetURL:    s.SheetURL,
	}, nil
}

// Update overwrites the supplied fields, creating the settings row on first
// save.
func (uc *SettingsUseCase) Update(ctx context.Context, merchantID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.repo.GetByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if s == nil {
		s = &entity.MerchantSettings{
			ID:         uuid.New().String(),
			MerchantID: merchantID,
			TaxPercent: uc.defaultTax,
			CreatedAt:  now,
		}
	}
	if in.CompanyName != nil {
		s.CompanyName = *in.CompanyName
	}
	if in.TaxPercent != nil {
		s.TaxPercent = *in.TaxPercent
	}
	if in.SheetURL != nil {
		s.SheetURL = *in.SheetURL
	}
	s.UpdatedAt = now
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		CompanyName: s.CompanyName,
		TaxPercent:  s.TaxPercent,
		SheetURL:    s.SheetURL,
	}, nil
}
