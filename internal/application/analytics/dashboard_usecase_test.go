package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerdesk/margin-api/internal/application/analytics"
	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/profit"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
)

const testMerchant = "00000000-0000-0000-0000-000000000001"

// stubOrderRepo serves canned joined rows, filtered by the since bound like
// the real query would.
type stubOrderRepo struct {
	rows []repository.OrderWithProduct
}

func (r *stubOrderRepo) Create(context.Context, *entity.Order) error { return nil }

func (r *stubOrderRepo) FindByKaspiID(context.Context, string, string) (*entity.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) ListWithProducts(_ context.Context, _ string, since time.Time) ([]repository.OrderWithProduct, error) {
	var out []repository.OrderWithProduct
	for _, row := range r.rows {
		if !row.Order.OrderDate.Before(since) {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubSettingsRepo struct {
	settings *entity.MerchantSettings
}

func (r *stubSettingsRepo) GetByMerchant(context.Context, string) (*entity.MerchantSettings, error) {
	return r.settings, nil
}

func (r *stubSettingsRepo) Upsert(context.Context, *entity.MerchantSettings) error { return nil }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func orderRow(kaspiID string, amount, delivery string, qty int, status string, date time.Time, product *entity.Product) repository.OrderWithProduct {
	return repository.OrderWithProduct{
		Order: entity.Order{
			ID:           kaspiID,
			MerchantID:   testMerchant,
			KaspiOrderID: kaspiID,
			SKU:          "SKU-1",
			Amount:       dec(amount),
			Status:       status,
			OrderDate:    date,
			Quantity:     qty,
			DeliveryCost: dec(delivery),
		},
		Product: product,
	}
}

func costProfile(purchase, commission string) *entity.Product {
	return &entity.Product{
		MerchantID:        testMerchant,
		SKU:               "SKU-1",
		PurchasePrice:     dec(purchase),
		CommissionPercent: dec(commission),
	}
}

func newDashboard(orders *stubOrderRepo, settings *stubSettingsRepo) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(
		orders, settings,
		profit.NewCalculator(nil),
		dec("3"), 30,
	)
}

func TestGetSummaryComputesTotalsAndRatios(t *testing.T) {
	today := time.Now().AddDate(0, 0, -1)

	// Reference order: 10000 revenue, unit cost 2600 x2, 10% commission,
	// 3% tax, 500 delivery -> profit 3000.
	orders := &stubOrderRepo{rows: []repository.OrderWithProduct{
		orderRow("ORD-1", "10000", "500", 2, "Выдан", today, costProfile("2600", "10")),
	}}
	uc := newDashboard(orders, &stubSettingsRepo{})

	sum, err := uc.GetSummary(context.Background(), testMerchant, 30)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.TotalOrders)
	assert.True(t, sum.TotalRevenue.Equal(dec("10000")), "revenue %s", sum.TotalRevenue)
	assert.True(t, sum.TotalProfit.Equal(dec("3000")), "profit %s", sum.TotalProfit)
	assert.True(t, sum.MarginPercent.Equal(dec("30")), "margin %s", sum.MarginPercent)
	// expenses 7000 -> ROI 3000/7000 = 42.86 after rounding
	assert.True(t, sum.ROIPercent.Equal(dec("42.86")), "roi %s", sum.ROIPercent)
	assert.Equal(t, 0, sum.ProductsWithoutCosts)
}

func TestGetSummarySkipsExcludedStatuses(t *testing.T) {
	today := time.Now().AddDate(0, 0, -1)
	orders := &stubOrderRepo{rows: []repository.OrderWithProduct{
		orderRow("ORD-1", "10000", "0", 1, "Выдан", today, costProfile("2600", "0")),
		orderRow("ORD-2", "99999", "0", 1, "Отменен", today, costProfile("2600", "0")),
		orderRow("ORD-3", "99999", "0", 1, "Возврат", today, costProfile("2600", "0")),
	}}
	uc := newDashboard(orders, &stubSettingsRepo{})

	sum, err := uc.GetSummary(context.Background(), testMerchant, 30)
	require.NoError(t, err)

	// Excluded orders count toward nothing, not even TotalOrders.
	assert.Equal(t, 1, sum.TotalOrders)
	assert.True(t, sum.TotalRevenue.Equal(dec("10000")))
	require.Len(t, sum.ChartData, 1)
	assert.Equal(t, 1, sum.ChartData[0].OrdersCount)
}

func TestGetSummaryFlagsMissingCosts(t *testing.T) {
	today := time.Now().AddDate(0, 0, -1)
	orders := &stubOrderRepo{rows: []repository.OrderWithProduct{
		orderRow("ORD-1", "10000", "0", 1, "Выдан", today, nil),                      // no profile at all
		orderRow("ORD-2", "10000", "0", 1, "Выдан", today, costProfile("0", "10")),   // profile never filled in
		orderRow("ORD-3", "10000", "0", 1, "Выдан", today, costProfile("2600", "0")), // complete
	}}
	uc := newDashboard(orders, &stubSettingsRepo{})

	sum, err := uc.GetSummary(context.Background(), testMerchant, 30)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.ProductsWithoutCosts)
	assert.Equal(t, 3, sum.TotalOrders, "flagged orders still count")
}

func TestGetSummaryZeroOrders(t *testing.T) {
	uc := newDashboard(&stubOrderRepo{}, &stubSettingsRepo{})

	sum, err := uc.GetSummary(context.Background(), testMerchant, 30)
	require.NoError(t, err)

	// All-zero summary, ratio guards keep the division away.
	assert.Equal(t, 0, sum.TotalOrders)
	assert.True(t, sum.TotalRevenue.IsZero())
	assert.True(t, sum.MarginPercent.IsZero())
	assert.True(t, sum.ROIPercent.IsZero())
	assert.Empty(t, sum.ChartData)
}

func TestGetSummaryGroupsByDay(t *testing.T) {
	day1 := time.Date(2025, 3, 29, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)

	orders := &stubOrderRepo{rows: []repository.OrderWithProduct{
		orderRow("ORD-1", "1000", "0", 1, "Выдан", day1, costProfile("100", "0")),
		orderRow("ORD-2", "2000", "0", 1, "Выдан", day1.Add(5*time.Hour), costProfile("100", "0")),
		orderRow("ORD-3", "3000", "0", 1, "Выдан", day2, costProfile("100", "0")),
	}}
	uc := newDashboard(orders, &stubSettingsRepo{})

	sum, err := uc.GetSummary(context.Background(), testMerchant, 3650)
	require.NoError(t, err)

	require.Len(t, sum.ChartData, 2)
	assert.Equal(t, "2025-03-29", sum.ChartData[0].Date)
	assert.True(t, sum.ChartData[0].Revenue.Equal(dec("3000")))
	assert.Equal(t, 2, sum.ChartData[0].OrdersCount)
	assert.Equal(t, "2025-03-30", sum.ChartData[1].Date)
	assert.Equal(t, 1, sum.ChartData[1].OrdersCount)
}

func TestGetSummaryWindowFiltersOldOrders(t *testing.T) {
	orders := &stubOrderRepo{rows: []repository.OrderWithProduct{
		orderRow("ORD-old", "9999", "0", 1, "Выдан", time.Now().AddDate(0, 0, -45), costProfile("100", "0")),
		orderRow("ORD-new", "1000", "0", 1, "Выдан", time.Now().AddDate(0, 0, -2), costProfile("100", "0")),
	}}
	uc := newDashboard(orders, &stubSettingsRepo{})

	sum, err := uc.GetSummary(context.Background(), testMerchant, 30)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.TotalOrders)
	assert.True(t, sum.TotalRevenue.Equal(dec("1000")))
}

func TestGetSummaryUsesMerchantTaxRate(t *testing.T) {
	today := time.Now().AddDate(0, 0, -1)
	orders := &stubOrderRepo{rows: []repository.OrderWithProduct{
		orderRow("ORD-1", "10000", "0", 1, "Выдан", today, costProfile("0", "0")),
	}}
	settings := &stubSettingsRepo{settings: &entity.MerchantSettings{
		MerchantID: testMerchant,
		TaxPercent: dec("10"),
	}}
	uc := newDashboard(orders, settings)

	sum, err := uc.GetSummary(context.Background(), testMerchant, 30)
	require.NoError(t, err)

	// 10% tax instead of the default 3%.
	assert.True(t, sum.TotalProfit.Equal(dec("9000")), "profit %s", sum.TotalProfit)
}
