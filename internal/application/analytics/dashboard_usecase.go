// Package analytics contains the read-side use cases: the profitability
// dashboard and its PDF report.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellerdesk/margin-api/internal/application/dto"
	"github.com/sellerdesk/margin-api/internal/domain/profit"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
)

const chartDateLayout = "2006-01-02"

// DashboardUseCase folds per-order profitability into window totals, ratios
// and a daily series. Pure read path: one joined query, then arithmetic.
type DashboardUseCase struct {
	orders        repository.OrderRepository
	settings      repository.SettingsRepository
	calc          *profit.Calculator
	defaultTax    decimal.Decimal
	defaultWindow int
}

// NewDashboardUseCase builds the use case. defaultTaxPercent applies to
// merchants without a settings row; defaultWindowDays to requests without
// an explicit window.
func NewDashboardUseCase(
	orders repository.OrderRepository,
	settings repository.SettingsRepository,
	calc *profit.Calculator,
	defaultTaxPercent decimal.Decimal,
	defaultWindowDays int,
) *DashboardUseCase {
	return &DashboardUseCase{
		orders:        orders,
		settings:      settings,
		calc:          calc,
		defaultTax:    defaultTaxPercent,
		defaultWindow: defaultWindowDays,
	}
}

// dayBucket accumulates one calendar date at full precision; rounding
// happens only when the DTO is built.
type dayBucket struct {
	revenue decimal.Decimal
	profit  decimal.Decimal
	count   int
}

// GetSummary computes the dashboard for the merchant over the last `days`
// days (inclusive lower bound, `now` captured once per call). Excluded
// orders contribute to nothing, not even the order count. The use case
// never fails on missing data: zero orders yield an all-zero summary.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, merchantID string, days int) (*dto.DashboardSummary, error) {
	if days <= 0 {
		days = uc.defaultWindow
	}
	now := time.Now()
	since := now.AddDate(0, 0, -days)

	taxPercent, err := uc.taxPercent(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tax percent: %w", err)
	}

	rows, err := uc.orders.ListWithProducts(ctx, merchantID, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard: load orders: %w", err)
	}

	var (
		totalRevenue = decimal.Zero
		totalProfit  = decimal.Zero
		totalOrders  int
		withoutCosts int
		daily        = map[string]*dayBucket{}
	)

	for _, row := range rows {
		if uc.calc.Excluded(row.Order.Status) {
			continue
		}

		res := uc.calc.Compute(&row.Order, row.Product, taxPercent)

		totalOrders++
		totalRevenue = totalRevenue.Add(res.Revenue)
		totalProfit = totalProfit.Add(res.Profit)
		if res.MissingCost {
			withoutCosts++
		}

		// Group by the date-only component; time-of-day is irrelevant here.
		key := row.Order.OrderDate.Format(chartDateLayout)
		b, ok := daily[key]
		if !ok {
			b = &dayBucket{revenue: decimal.Zero, profit: decimal.Zero}
			daily[key] = b
		}
		b.revenue = b.revenue.Add(res.Revenue)
		b.profit = b.profit.Add(res.Profit)
		b.count++
	}

	// Guarded ratios: zero revenue or zero expenses mean zero percent, not
	// a division fault.
	margin := decimal.Zero
	if totalRevenue.IsPositive() {
		margin = totalProfit.Div(totalRevenue).Mul(hundred)
	}
	expenses := totalRevenue.Sub(totalProfit)
	roi := decimal.Zero
	if expenses.IsPositive() {
		roi = totalProfit.Div(expenses).Mul(hundred)
	}

	keys := make([]string, 0, len(daily))
	for k := range daily {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	chart := make([]dto.DailyStat, 0, len(keys))
	for _, k := range keys {
		b := daily[k]
		chart = append(chart, dto.DailyStat{
			Date:        k,
			Revenue:     b.revenue.Round(2),
			Profit:      b.profit.Round(2),
			OrdersCount: b.count,
		})
	}

	return &dto.DashboardSummary{
		TotalRevenue:         totalRevenue.Round(2),
		TotalProfit:          totalProfit.Round(2),
		TotalOrders:          totalOrders,
		MarginPercent:        margin.Round(2),
		ROIPercent:           roi.Round(2),
		ProductsWithoutCosts: withoutCosts,
		ChartData:            chart,
	}, nil
}

// taxPercent resolves the merchant's tax rate, falling back to the
// configured default (3.0) when no settings row exists.
func (uc *DashboardUseCase) taxPercent(ctx context.Context, merchantID string) (decimal.Decimal, error) {
	s, err := uc.settings.GetByMerchant(ctx, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	if s == nil {
		return uc.defaultTax, nil
	}
	return s.TaxPercent, nil
}

var hundred = decimal.NewFromInt(100)
