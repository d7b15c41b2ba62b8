// Package profit implements the per-order profitability formula (pure
// domain service, no I/O):
//
//	profit = revenue - (unit_cost*qty + commission) - tax - delivery
//
// where unit_cost = purchase + logistics_intl + logistics_local + other,
// commission = revenue * commission% / 100 and tax = revenue * tax% / 100.
package profit

import (
	"github.com/shopspring/decimal"

	"github.com/sellerdesk/margin-api/internal/domain/entity"
)

// DefaultExcludedStatuses are the Kaspi labels that never count toward
// profit. Overridable through configuration; the marketplace vocabulary is
// not under our control.
var DefaultExcludedStatuses = []string{"Отменен", "Возврат"}

var hundred = decimal.NewFromInt(100)

// Result is the contribution of a single order to the aggregate numbers.
// MissingCost flags orders whose profit is overstated because the cost
// profile is absent or has no purchase price filled in.
type Result struct {
	Revenue     decimal.Decimal
	Profit      decimal.Decimal
	MissingCost bool
}

// Calculator evaluates orders against their cost profiles. Safe for
// concurrent use; the exclusion set is fixed at construction.
type Calculator struct {
	excluded map[string]struct{}
}

// NewCalculator builds a calculator with the given excluded status set.
// Pass nil to use DefaultExcludedStatuses.
func NewCalculator(excludedStatuses []string) *Calculator {
	if excludedStatuses == nil {
		excludedStatuses = DefaultExcludedStatuses
	}
	set := make(map[string]struct{}, len(excludedStatuses))
	for _, s := range excludedStatuses {
		set[s] = struct{}{}
	}
	return &Calculator{excluded: set}
}

// Excluded reports whether an order with this status must be skipped
// entirely: it contributes to no total, not even the order count.
func (c *Calculator) Excluded(status string) bool {
	_, ok := c.excluded[status]
	return ok
}

// Compute derives the financial result of one order. product may be nil
// (no cost profile for the SKU): the order then carries no deductible cost
// and is flagged MissingCost. All absent numeric inputs count as zero; the
// function never fails.
func (c *Calculator) Compute(order *entity.Order, product *entity.Product, taxPercent decimal.Decimal) Result {
	revenue := order.Amount

	qty := order.Quantity
	if qty <= 0 {
		qty = 1
	}

	var deductible decimal.Decimal
	missingCost := true
	if product != nil {
		costOfGoods := product.UnitCost().Mul(decimal.NewFromInt(int64(qty)))
		commission := revenue.Mul(product.CommissionPercent.Div(hundred))
		deductible = costOfGoods.Add(commission)
		missingCost = product.PurchasePrice.IsZero()
	}

	tax := revenue.Mul(taxPercent.Div(hundred))

	return Result{
		Revenue:     revenue,
		Profit:      revenue.Sub(deductible).Sub(tax).Sub(order.DeliveryCost),
		MissingCost: missingCost,
	}
}
