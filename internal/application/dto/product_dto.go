package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateProductCostsRequest partial overwrite of a cost profile: only the
// fields sent are written, historical orders are never recomputed.
type UpdateProductCostsRequest struct {
	PurchasePrice     *decimal.Decimal `json:"purchase_price"`
	LogisticsIntl     *decimal.Decimal `json:"logistics_intl"`
	LogisticsLocal    *decimal.Decimal `json:"logistics_local"`
	OtherExpenses     *decimal.Decimal `json:"other_expenses"`
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
}

// ProductResponse a cost profile as returned by the API.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	LogisticsIntl     decimal.Decimal `json:"logistics_intl"`
	LogisticsLocal    decimal.Decimal `json:"logistics_local"`
	OtherExpenses     decimal.Decimal `json:"other_expenses"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse paginated product list.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
