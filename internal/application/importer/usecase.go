// Package importer ingests a Kaspi order export into the store: it fetches
// the CSV, maps rows through the fixed column dictionary, normalizes dirty
// cells and performs the deduplicating upsert of products and orders.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerdesk/margin-api/internal/application/dto"
	"github.com/sellerdesk/margin-api/internal/domain"
	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
	"github.com/sellerdesk/margin-api/pkg/logger"
)

// SourceFetcher retrieves the remote export as header-keyed rows. A failed
// fetch (unreachable URL, not parseable as a table) is the only fatal error
// of an import.
type SourceFetcher interface {
	FetchRows(ctx context.Context, url string) ([]map[string]string, error)
}

// TxRunner executes one import batch inside a single transaction, so a
// product created for row N is visible to row N+1 and the batch commits as
// one unit.
type TxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository, orders repository.OrderRepository) error) error
}

// SyncUseCase is the deduplicating importer. Re-running it over the same
// export is a no-op: orders dedup on (merchant, kaspi_order_id), products
// on (merchant, sku).
type SyncUseCase struct {
	fetcher SourceFetcher
	tx      TxRunner
	log     *logger.Logger
}

// NewSyncUseCase builds the importer.
func NewSyncUseCase(fetcher SourceFetcher, tx TxRunner, log *logger.Logger) *SyncUseCase {
	return &SyncUseCase{fetcher: fetcher, tx: tx, log: log}
}

// Sync imports every row of the export at csvURL for the merchant. Row-level
// problems are recorded in the report and never abort the batch; only a
// fetch failure or a storage failure does.
func (uc *SyncUseCase) Sync(ctx context.Context, merchantID, csvURL string) (*dto.SyncReport, error) {
	rows, err := uc.fetcher.FetchRows(ctx, csvURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	report := &dto.SyncReport{Errors: []string{}}
	now := time.Now()

	err = uc.tx.Run(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
		for i, row := range rows {
			// Header is line 1, so source line numbers start at 2.
			if err := uc.importRow(ctx, merchantID, MapRow(row), i+2, now, products, orders, report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("merchant_id", merchantID).
		Int("rows", len(rows)).
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Int("errors", len(report.Errors)).
		Msg("kaspi sync finished")

	return report, nil
}

// importRow processes one mapped row. Data problems (missing required
// fields) become report entries and the batch continues; storage errors are
// returned and abort the whole transaction.
func (uc *SyncUseCase) importRow(
	ctx context.Context,
	merchantID string,
	rec RawOrderRow,
	line int,
	now time.Time,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	report *dto.SyncReport,
) error {
	if missing := rec.MissingRequired(); len(missing) > 0 {
		report.Errors = append(report.Errors,
			fmt.Sprintf("line %d: missing required fields: %s", line, strings.Join(missing, ", ")))
		return nil
	}

	sku := CleanSKU(get(rec.SKU))

	if err := uc.ensureProduct(ctx, merchantID, sku, get(rec.ProductName), now, products); err != nil {
		return fmt.Errorf("line %d: product %s: %w", line, sku, err)
	}

	kaspiID := strings.TrimSpace(get(rec.KaspiOrderID))
	existing, err := orders.FindByKaspiID(ctx, merchantID, kaspiID)
	if err != nil {
		return fmt.Errorf("line %d: order %s: %w", line, kaspiID, err)
	}
	if existing != nil {
		report.Skipped++
		return nil
	}

	order := &entity.Order{
		ID:           uuid.New().String(),
		MerchantID:   merchantID,
		KaspiOrderID: kaspiID,
		SKU:          sku,
		ProductName:  strings.TrimSpace(get(rec.ProductName)),
		Amount:       ParseMoney(get(rec.Amount)),
		Status:       strings.TrimSpace(get(rec.Status)),
		OrderDate:    ParseDate(get(rec.OrderDate), now),
		Quantity:     ParseQuantity(get(rec.Quantity)),
		DeliveryCost: ParseMoney(get(rec.DeliveryCost)),
		CreatedAt:    now,
	}
	if err := orders.Create(ctx, order); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Lost a race against a concurrent import: same outcome as the
			// FindByKaspiID hit above.
			report.Skipped++
			return nil
		}
		return fmt.Errorf("line %d: order %s: %w", line, kaspiID, err)
	}
	report.Imported++
	return nil
}

// ensureProduct creates a zero-cost profile for an unseen SKU. A duplicate
// insert means another row (or a concurrent import) got there first, which
// is fine either way.
func (uc *SyncUseCase) ensureProduct(
	ctx context.Context,
	merchantID, sku, name string,
	now time.Time,
	products repository.ProductRepository,
) error {
	existing, err := products.FindBySKU(ctx, merchantID, sku)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if name = strings.TrimSpace(name); name == "" {
		name = "Unknown"
	}
	p := &entity.Product{
		ID:                uuid.New().String(),
		MerchantID:        merchantID,
		SKU:               sku,
		Name:              name,
		PurchasePrice:     decimal.Zero,
		LogisticsIntl:     decimal.Zero,
		LogisticsLocal:    decimal.Zero,
		OtherExpenses:     decimal.Zero,
		CommissionPercent: decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := products.Create(ctx, p); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		return err
	}
	return nil
}
