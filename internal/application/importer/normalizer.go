package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// kaspiDateLayout is the only date format the export uses, optionally
// followed by a time-of-day ("29.03.2025" or "29.03.2025 14:00").
const kaspiDateLayout = "02.01.2006"

// moneyCleaner strips thousands separators (regular and non-breaking
// spaces) and turns the comma decimal separator into a point.
var moneyCleaner = strings.NewReplacer(",", ".", " ", "", " ", "")

// ParseMoney normalizes a locale-formatted amount such as "1 234,50" into a
// decimal. Unparseable input yields zero: a garbled cell degrades that
// field, it never aborts the import.
func ParseMoney(raw string) decimal.Decimal {
	cleaned := moneyCleaner.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseQuantity accepts "2", "1,0" or "1.0" and truncates to an integer.
// Anything unparseable or non-positive becomes 1.
func ParseQuantity(raw string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if cleaned == "" {
		return 1
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 1
	}
	qty := int(d.IntPart())
	if qty <= 0 {
		return 1
	}
	return qty
}

// ParseDate takes the date portion of the cell (everything before the first
// whitespace) and parses it as day.month.year. Malformed dates fall back to
// the batch's processing time: a wrong day beats a dropped row.
func ParseDate(raw string, now time.Time) time.Time {
	datePart, _, _ := strings.Cut(strings.TrimSpace(raw), " ")
	t, err := time.Parse(kaspiDateLayout, datePart)
	if err != nil {
		return now
	}
	return t
}

// CleanSKU trims surrounding whitespace from an identifier cell.
func CleanSKU(raw string) string {
	return strings.TrimSpace(raw)
}
