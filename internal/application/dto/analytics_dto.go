package dto

import "github.com/shopspring/decimal"

// SyncRequest input for POST /api/analytics/sync.
type SyncRequest struct {
	CSVURL string `json:"csv_url" validate:"required,url"`
}

// SyncReport outcome of one import batch. Errors holds row-level issues
// (missing required fields); they never abort the batch.
type SyncReport struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"` // already-imported orders (idempotent re-run)
	Errors   []string `json:"errors"`
}

// DailyStat one chart point: all orders of one calendar date.
type DailyStat struct {
	Date        string          `json:"date"` // 2006-01-02
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
	OrdersCount int             `json:"orders_count"`
}

// DashboardSummary response of GET /api/analytics/dashboard.
// ProductsWithoutCosts is a trust signal: that many orders were computed
// with an absent or unfilled cost profile, so TotalProfit is optimistic.
type DashboardSummary struct {
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalProfit          decimal.Decimal `json:"total_profit"`
	TotalOrders          int             `json:"total_orders"`
	MarginPercent        decimal.Decimal `json:"margin_percent"`
	ROIPercent           decimal.Decimal `json:"roi_percent"`
	ProductsWithoutCosts int             `json:"products_without_costs"`
	ChartData            []DailyStat     `json:"chart_data"`
}
