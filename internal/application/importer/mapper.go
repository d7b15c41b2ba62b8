package importer

import "strings"

// columnMap renames the export's Russian headers to canonical field names.
// Columns outside this dictionary are dropped; dictionary columns absent
// from the file are treated as missing, not as an error.
var columnMap = map[string]string{
	"№ заказа":                           "kaspi_order_id",
	"Артикул":                            "sku",
	"Сумма":                              "amount",
	"Статус":                             "status",
	"Дата поступления заказа":            "order_date",
	"Стоимость доставки для продавца":    "delivery_cost",
	"Название товара в Kaspi Магазине":   "product_name",
	"Количество":                         "quantity",
}

// RawOrderRow is one export row projected through columnMap, still untyped.
// nil means the column was not present in the source at all; typed
// conversion happens at the point of persistence via the normalizers.
type RawOrderRow struct {
	KaspiOrderID *string
	SKU          *string
	Amount       *string
	Status       *string
	OrderDate    *string
	DeliveryCost *string
	ProductName  *string
	Quantity     *string
}

// MapRow projects a header-keyed source row onto RawOrderRow. Only the
// intersection of the row's columns and columnMap survives.
func MapRow(row map[string]string) RawOrderRow {
	var rec RawOrderRow
	for source, cell := range row {
		v := cell
		switch columnMap[strings.TrimSpace(source)] {
		case "kaspi_order_id":
			rec.KaspiOrderID = &v
		case "sku":
			rec.SKU = &v
		case "amount":
			rec.Amount = &v
		case "status":
			rec.Status = &v
		case "order_date":
			rec.OrderDate = &v
		case "delivery_cost":
			rec.DeliveryCost = &v
		case "product_name":
			rec.ProductName = &v
		case "quantity":
			rec.Quantity = &v
		}
	}
	return rec
}

// MissingRequired lists the canonical names of required fields the row
// lacks. Order id, SKU, amount and status must be present (possibly dirty);
// everything else may be absent.
func (r RawOrderRow) MissingRequired() []string {
	var missing []string
	if r.KaspiOrderID == nil || strings.TrimSpace(*r.KaspiOrderID) == "" {
		missing = append(missing, "kaspi_order_id")
	}
	if r.SKU == nil || strings.TrimSpace(*r.SKU) == "" {
		missing = append(missing, "sku")
	}
	if r.Amount == nil {
		missing = append(missing, "amount")
	}
	if r.Status == nil {
		missing = append(missing, "status")
	}
	return missing
}

// get returns the dereferenced value or "" for nil.
func get(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
