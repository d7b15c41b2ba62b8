package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sellerdesk/margin-api/internal/application/analytics"
	"github.com/sellerdesk/margin-api/internal/application/dto"
	"github.com/sellerdesk/margin-api/internal/application/importer"
	"github.com/sellerdesk/margin-api/internal/application/usecase"
	"github.com/sellerdesk/margin-api/internal/domain"
)

// AnalyticsHandler exposes the import trigger, the dashboard and the PDF
// report.
type AnalyticsHandler struct {
	sync      *importer.SyncUseCase
	dashboard *analytics.DashboardUseCase
	report    *analytics.ReportUseCase
	settings  *usecase.SettingsUseCase
}

// NewAnalyticsHandler builds the handler.
func NewAnalyticsHandler(
	sync *importer.SyncUseCase,
	dashboard *analytics.DashboardUseCase,
	report *analytics.ReportUseCase,
	settings *usecase.SettingsUseCase,
) *AnalyticsHandler {
	return &AnalyticsHandler{sync: sync, dashboard: dashboard, report: report, settings: settings}
}

// Sync godoc
// @Summary  Import the order export from a CSV URL
// @Tags     analytics
// @Router   /api/analytics/sync [post]
func (h *AnalyticsHandler) Sync(c *fiber.Ctx) error {
	merchantID := GetMerchantID(c)

	var in dto.SyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
		}
	}
	// No URL in the request: fall back to the one saved in settings.
	if in.CSVURL == "" {
		s, err := h.settings.Get(c.Context(), merchantID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		in.CSVURL = s.SheetURL
	}
	if in.CSVURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "csv_url is required (none saved in settings)"})
	}

	out, err := h.sync.Sync(c.Context(), merchantID, in.CSVURL)
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SOURCE_UNAVAILABLE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary  Profitability dashboard over the last N days
// @Tags     analytics
// @Router   /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)

	out, err := h.dashboard.GetSummary(c.Context(), GetMerchantID(c), days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary  Download the profitability report as PDF
// @Tags     analytics
// @Router   /api/analytics/report [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	merchantID := GetMerchantID(c)
	days := c.QueryInt("days", 0)

	s, err := h.settings.Get(c.Context(), merchantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	pdf, err := h.report.Generate(c.Context(), merchantID, s.CompanyName, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	filename := fmt.Sprintf("profitability-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
