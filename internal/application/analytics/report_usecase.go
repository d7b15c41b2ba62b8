package analytics

import (
	"context"
	"fmt"

	"github.com/sellerdesk/margin-api/internal/application/dto"
)

// ReportGenerator renders a dashboard summary as a downloadable document.
// Implemented by the PDF adapter.
type ReportGenerator interface {
	GenerateDashboardPDF(ctx context.Context, companyName string, days int, summary *dto.DashboardSummary) ([]byte, error)
}

// ReportUseCase produces the PDF profitability report: the same numbers as
// GetSummary, rendered for sharing outside the app.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator ReportGenerator
}

// NewReportUseCase builds the use case.
func NewReportUseCase(dashboard *DashboardUseCase, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator}
}

// Generate computes the dashboard for the window and renders it to PDF
// bytes. companyName comes from the merchant's settings and may be empty.
func (uc *ReportUseCase) Generate(ctx context.Context, merchantID, companyName string, days int) ([]byte, error) {
	if days <= 0 {
		days = uc.dashboard.defaultWindow
	}
	summary, err := uc.dashboard.GetSummary(ctx, merchantID, days)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateDashboardPDF(ctx, companyName, days, summary)
	if err != nil {
		return nil, fmt.Errorf("report: render pdf: %w", err)
	}
	return pdf, nil
}
