package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the cost profile for one SKU, unique per merchant. The importer
// creates it with zeroed costs on first sighting of the SKU; after that the
// cost fields change only through the explicit cost-update operation.
// A zero PurchasePrice means the merchant has not filled the profile yet,
// which the dashboard surfaces as products_without_costs.
type Product struct {
	ID         string
	MerchantID string
	SKU        string // unique per merchant
	Name       string

	PurchasePrice     decimal.Decimal // acquisition cost per unit
	LogisticsIntl     decimal.Decimal // first-mile (supplier -> country) per unit
	LogisticsLocal    decimal.Decimal // fulfillment / last-mile per unit
	OtherExpenses     decimal.Decimal // packaging and misc per unit
	CommissionPercent decimal.Decimal // marketplace commission, % of revenue (0-100)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnitCost is the per-unit cost of goods: acquisition plus both logistics
// legs plus packaging/other.
func (p *Product) UnitCost() decimal.Decimal {
	return p.PurchasePrice.Add(p.LogisticsIntl).Add(p.LogisticsLocal).Add(p.OtherExpenses)
}
