package usecase

import (
	"context"
	"time"

	"github.com/sellerdesk/margin-api/internal/application/dto"
	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
)

// ProductUseCase read + cost-update operations for cost profiles. Products
// are created by the importer only; this use case never inserts.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List returns the merchant's cost profiles with pagination.
func (uc *ProductUseCase) List(ctx context.Context, merchantID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByMerchant(ctx, merchantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateCosts overwrites only the supplied cost fields of the profile
// identified by SKU. Historical orders are never recomputed: the dashboard
// always reads the current profile. Returns (nil, nil) when the SKU is
// unknown for this merchant.
func (uc *ProductUseCase) UpdateCosts(ctx context.Context, merchantID, sku string, in dto.UpdateProductCostsRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.FindBySKU(ctx, merchantID, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.LogisticsIntl != nil {
		product.LogisticsIntl = *in.LogisticsIntl
	}
	if in.LogisticsLocal != nil {
		product.LogisticsLocal = *in.LogisticsLocal
	}
	if in.OtherExpenses != nil {
		product.OtherExpenses = *in.OtherExpenses
	}
	if in.CommissionPercent != nil {
		product.CommissionPercent = *in.CommissionPercent
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		PurchasePrice:     p.PurchasePrice,
		LogisticsIntl:     p.LogisticsIntl,
		LogisticsLocal:    p.LogisticsLocal,
		OtherExpenses:     p.OtherExpenses,
		CommissionPercent: p.CommissionPercent,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
