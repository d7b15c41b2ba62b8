package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Merchant is the tenant of the system: a Kaspi seller account. Every
// product and order belongs to exactly one merchant.
type Merchant struct {
	ID           string
	Email        string
	PasswordHash string
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MerchantSettings holds per-merchant preferences. TaxPercent feeds the
// profit formula; SheetURL remembers the last synced export location.
type MerchantSettings struct {
	ID          string
	MerchantID  string
	CompanyName string
	TaxPercent  decimal.Decimal // percent of revenue, e.g. 3.0
	SheetURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
