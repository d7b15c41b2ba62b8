package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an imported marketplace fact. Immutable after creation: the
// importer only inserts, identified by (merchant, kaspi order id).
// SKU is a soft reference to Product; the matching profile may not exist.
type Order struct {
	ID           string
	MerchantID   string
	KaspiOrderID string // the marketplace's own order number (dedup key)
	SKU          string
	ProductName  string // name snapshot at import time
	Amount       decimal.Decimal
	Status       string // free-text marketplace label
	OrderDate    time.Time
	Quantity     int             // >= 1 after normalization
	DeliveryCost decimal.Decimal // delivery borne by the seller
	CreatedAt    time.Time
}
