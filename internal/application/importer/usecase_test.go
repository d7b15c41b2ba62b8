package importer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerdesk/margin-api/internal/application/importer"
	"github.com/sellerdesk/margin-api/internal/domain"
	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
	"github.com/sellerdesk/margin-api/pkg/logger"
)

const testMerchant = "00000000-0000-0000-0000-000000000001"

// memStore is an in-memory stand-in for the product and order repositories,
// enforcing the same uniqueness rules as the schema.
type memStore struct {
	products map[string]*entity.Product // merchant|sku
	orders   map[string]*entity.Order   // merchant|kaspiOrderID
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		orders:   map[string]*entity.Order{},
	}
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	key := p.MerchantID + "|" + p.SKU
	if _, ok := r.s.products[key]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.s.products[key] = &cp
	return nil
}

func (r *memProductRepo) FindBySKU(_ context.Context, merchantID, sku string) (*entity.Product, error) {
	p, ok := r.s.products[merchantID+"|"+sku]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.MerchantID+"|"+p.SKU] = &cp
	return nil
}

func (r *memProductRepo) ListByMerchant(_ context.Context, merchantID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.MerchantID == merchantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	key := o.MerchantID + "|" + o.KaspiOrderID
	if _, ok := r.s.orders[key]; ok {
		return domain.ErrDuplicate
	}
	cp := *o
	r.s.orders[key] = &cp
	return nil
}

func (r *memOrderRepo) FindByKaspiID(_ context.Context, merchantID, kaspiOrderID string) (*entity.Order, error) {
	o, ok := r.s.orders[merchantID+"|"+kaspiOrderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) ListWithProducts(_ context.Context, merchantID string, since time.Time) ([]repository.OrderWithProduct, error) {
	var out []repository.OrderWithProduct
	for _, o := range r.s.orders {
		if o.MerchantID != merchantID || o.OrderDate.Before(since) {
			continue
		}
		row := repository.OrderWithProduct{Order: *o}
		if p, ok := r.s.products[merchantID+"|"+o.SKU]; ok {
			cp := *p
			row.Product = &cp
		}
		out = append(out, row)
	}
	return out, nil
}

// memTxRunner runs the callback straight against the store; the importer
// does not care that there is no real transaction underneath.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.OrderRepository) error) error {
	return fn(&memProductRepo{s: r.s}, &memOrderRepo{s: r.s})
}

// stubFetcher returns canned rows or an error.
type stubFetcher struct {
	rows []map[string]string
	err  error
}

func (f *stubFetcher) FetchRows(context.Context, string) ([]map[string]string, error) {
	return f.rows, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func exportRow(orderID, sku, amount, status string) map[string]string {
	return map[string]string{
		"№ заказа":                         orderID,
		"Артикул":                          sku,
		"Сумма":                            amount,
		"Статус":                           status,
		"Дата поступления заказа":          "29.03.2025",
		"Стоимость доставки для продавца":  "500",
		"Название товара в Kaspi Магазине": "Чайник",
		"Количество":                       "2",
	}
}

func TestSyncImportsFreshExport(t *testing.T) {
	store := newMemStore()
	fetcher := &stubFetcher{rows: []map[string]string{
		exportRow("ORD-1", "SKU-1", "10 000,00", "Выдан"),
		exportRow("ORD-2", "SKU-1", "5 000,00", "Выдан"),
		exportRow("ORD-3", "SKU-2", "7 500,00", "Отменен"),
	}}
	uc := importer.NewSyncUseCase(fetcher, &memTxRunner{s: store}, testLogger())

	report, err := uc.Sync(context.Background(), testMerchant, "https://example.com/export.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Imported, "excluded statuses are still stored; exclusion is a read-time concern")
	assert.Equal(t, 0, report.Skipped)
	assert.Empty(t, report.Errors)

	// One zero-cost profile per distinct SKU.
	assert.Len(t, store.products, 2)
	p := store.products[testMerchant+"|SKU-1"]
	require.NotNil(t, p)
	assert.True(t, p.PurchasePrice.IsZero())
	assert.Equal(t, "Чайник", p.Name)

	o := store.orders[testMerchant+"|ORD-1"]
	require.NotNil(t, o)
	assert.Equal(t, 2, o.Quantity)
	assert.True(t, o.Amount.Equal(decimalFromString(t, "10000")))
	assert.True(t, o.DeliveryCost.Equal(decimalFromString(t, "500")))
	assert.Equal(t, time.Date(2025, 3, 29, 0, 0, 0, 0, time.UTC), o.OrderDate)
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestSyncIsIdempotent(t *testing.T) {
	store := newMemStore()
	rows := []map[string]string{
		exportRow("ORD-1", "SKU-1", "10 000,00", "Выдан"),
		exportRow("ORD-2", "SKU-2", "5 000,00", "Выдан"),
	}
	uc := importer.NewSyncUseCase(&stubFetcher{rows: rows}, &memTxRunner{s: store}, testLogger())

	first, err := uc.Sync(context.Background(), testMerchant, "u")
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := uc.Sync(context.Background(), testMerchant, "u")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, store.orders, 2)
}

func TestSyncDeduplicatesWithinBatch(t *testing.T) {
	store := newMemStore()
	rows := []map[string]string{
		exportRow("ORD-1", "SKU-1", "10 000,00", "Выдан"),
		exportRow("ORD-1", "SKU-1", "10 000,00", "Выдан"),
	}
	uc := importer.NewSyncUseCase(&stubFetcher{rows: rows}, &memTxRunner{s: store}, testLogger())

	report, err := uc.Sync(context.Background(), testMerchant, "u")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, store.orders, 1)
}

func TestSyncRecordsRowErrorsAndContinues(t *testing.T) {
	store := newMemStore()
	bad := exportRow("", "SKU-1", "10 000,00", "Выдан") // no order id
	delete(bad, "№ заказа")
	rows := []map[string]string{
		bad,
		exportRow("ORD-2", "SKU-2", "5 000,00", "Выдан"),
	}
	uc := importer.NewSyncUseCase(&stubFetcher{rows: rows}, &memTxRunner{s: store}, testLogger())

	report, err := uc.Sync(context.Background(), testMerchant, "u")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Errors, 1)
	// Header is line 1: the first data row reports as line 2.
	assert.Contains(t, report.Errors[0], "line 2")
	assert.Contains(t, report.Errors[0], "kaspi_order_id")
}

func TestSyncDefaultsMissingQuantityAndDate(t *testing.T) {
	store := newMemStore()
	row := exportRow("ORD-1", "SKU-1", "10 000,00", "Выдан")
	row["Количество"] = ""
	row["Дата поступления заказа"] = "не дата"
	uc := importer.NewSyncUseCase(&stubFetcher{rows: []map[string]string{row}}, &memTxRunner{s: store}, testLogger())

	before := time.Now()
	_, err := uc.Sync(context.Background(), testMerchant, "u")
	require.NoError(t, err)

	o := store.orders[testMerchant+"|ORD-1"]
	require.NotNil(t, o)
	assert.Equal(t, 1, o.Quantity)
	assert.False(t, o.OrderDate.Before(before), "unparseable dates fall back to the batch time")
}

func TestSyncSourceUnavailable(t *testing.T) {
	uc := importer.NewSyncUseCase(
		&stubFetcher{err: errors.New("connection refused")},
		&memTxRunner{s: newMemStore()},
		testLogger(),
	)

	report, err := uc.Sync(context.Background(), testMerchant, "u")
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
