package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRow() map[string]string {
	return map[string]string{
		"№ заказа":                         "ORD-1001",
		"Артикул":                          "SKU-1",
		"Сумма":                            "10 000,00",
		"Статус":                           "Выдан",
		"Дата поступления заказа":          "29.03.2025",
		"Стоимость доставки для продавца":  "500",
		"Название товара в Kaspi Магазине": "Чайник",
		"Количество":                       "2",
	}
}

func TestMapRowProjectsKnownColumns(t *testing.T) {
	rec := MapRow(fullRow())

	require.NotNil(t, rec.KaspiOrderID)
	assert.Equal(t, "ORD-1001", *rec.KaspiOrderID)
	require.NotNil(t, rec.SKU)
	assert.Equal(t, "SKU-1", *rec.SKU)
	require.NotNil(t, rec.Amount)
	assert.Equal(t, "10 000,00", *rec.Amount)
	require.NotNil(t, rec.Quantity)
	assert.Equal(t, "2", *rec.Quantity)

	assert.Empty(t, rec.MissingRequired())
}

func TestMapRowDropsUnknownColumns(t *testing.T) {
	row := fullRow()
	row["Комментарий покупателя"] = "побыстрее"
	row["Способ оплаты"] = "Kaspi Red"

	rec := MapRow(row)

	// Unknown columns vanish; the known ones are unaffected.
	require.NotNil(t, rec.KaspiOrderID)
	assert.Empty(t, rec.MissingRequired())
}

func TestMapRowAbsentOptionalColumns(t *testing.T) {
	row := fullRow()
	delete(row, "Количество")
	delete(row, "Стоимость доставки для продавца")
	delete(row, "Название товара в Kaspi Магазине")

	rec := MapRow(row)

	assert.Nil(t, rec.Quantity)
	assert.Nil(t, rec.DeliveryCost)
	assert.Nil(t, rec.ProductName)
	assert.Empty(t, rec.MissingRequired(), "optional columns are never required")
}

func TestMissingRequired(t *testing.T) {
	row := fullRow()
	delete(row, "№ заказа")
	delete(row, "Сумма")

	rec := MapRow(row)
	missing := rec.MissingRequired()

	assert.ElementsMatch(t, []string{"kaspi_order_id", "amount"}, missing)
}

func TestMissingRequiredBlankIdentifier(t *testing.T) {
	row := fullRow()
	row["Артикул"] = "   "

	rec := MapRow(row)

	// Whitespace-only identifiers count as missing.
	assert.Contains(t, rec.MissingRequired(), "sku")
}
