package dto

import "github.com/shopspring/decimal"

// UpdateSettingsRequest partial update of merchant settings.
type UpdateSettingsRequest struct {
	CompanyName *string          `json:"company_name"`
	TaxPercent  *decimal.Decimal `json:"tax_percent"`
	SheetURL    *string          `json:"sheet_url"`
}

// SettingsResponse merchant settings as returned by the API. TaxPercent
// falls back to the configured default when the merchant never saved
// settings.
type SettingsResponse struct {
	CompanyName string          `json:"company_name"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
	SheetURL    string          `json:"sheet_url"`
}
