// Package pdf renders the profitability report: the dashboard numbers laid
// out on an A4 page for sharing outside the app.
//
//	┌─────────────────────────────────────────────────────────┐
//	│  HEADER: company name        │  period + generated date  │
//	│  ───────────────────────────────────────────────────────│
//	│  KPI block: revenue / profit / margin / ROI / orders     │
//	│  ───────────────────────────────────────────────────────│
//	│  TABLE: date | revenue | profit | orders                 │
//	│  ───────────────────────────────────────────────────────│
//	│  FOOTER: products-without-costs warning                  │
//	└─────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/sellerdesk/margin-api/internal/application/analytics"
	"github.com/sellerdesk/margin-api/internal/application/dto"
)

var _ analytics.ReportGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implements analytics.ReportGenerator with Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator builds the generator.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDashboardPDF renders the summary and returns the PDF bytes.
func (g *MarotoReportGenerator) GenerateDashboardPDF(
	_ context.Context,
	companyName string,
	days int,
	summary *dto.DashboardSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Profitability report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, days))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(summary.ChartData) {
		m.AddRows(r)
	}

	if summary.ProductsWithoutCosts > 0 {
		m.AddRows(line.NewRow(2))
		m.AddRows(warningRow(summary.ProductsWithoutCosts))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: company name (left), period and generation date (right).
func headerRow(companyName string, days int) core.Row {
	if companyName == "" {
		companyName = "Kaspi seller"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Profitability report", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Last %d days", days), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Generated: "+time.Now().Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// kpiRow: the five summary figures side by side.
func kpiRow(s *dto.DashboardSummary) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		col.New(1),
		kpi("Revenue", "₸ "+s.TotalRevenue.StringFixed(2)),
		kpi("Profit", "₸ "+s.TotalProfit.StringFixed(2)),
		kpi("Margin", s.MarginPercent.StringFixed(2)+"%"),
		kpi("ROI", s.ROIPercent.StringFixed(2)+"%"),
		kpi("Orders", fmt.Sprintf("%d", s.TotalOrders)),
		col.New(1),
	)
}

// tableHeaderRow: header of the daily breakdown table.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Date", 3, align.Left),
		h("Revenue", 3, align.Right),
		h("Profit", 3, align.Right),
		h("Orders", 3, align.Right),
	)
}

// tableRows: one row per chart point.
func tableRows(points []dto.DailyStat) []core.Row {
	result := make([]core.Row, 0, len(points))
	for _, p := range points {
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(p.Date, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(p.Revenue.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(p.Profit.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", p.OrdersCount), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

// warningRow: the trust signal about unfilled cost profiles.
func warningRow(count int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"%d order(s) were computed without a filled cost profile; profit above is overstated for them.",
			count,
		), props.Text{Size: 7.5, Color: colorGray, Top: 2}),
	))
}
