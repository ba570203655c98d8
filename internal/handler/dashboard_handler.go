package handler

import (
	"github.com/sptryogi/tracking-po/internal/format"
	"github.com/sptryogi/tracking-po/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetSummary mengembalikan angka summary cards untuk hasil filter aktif
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary(parseFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Gagal mengambil summary"})
	}

	return c.JSON(fiber.Map{
		"total_po":              summary.TotalPO,
		"total_tagihan":         summary.TotalTagihan,
		"total_tagihan_display": format.Currency(summary.TotalTagihan),
		"total_sisa":            summary.TotalSisa,
		"total_sisa_display":    format.Currency(summary.TotalSisa),
	})
}

// GetDailyFinancials mengembalikan data bar chart keuangan harian
func (h *DashboardHandler) GetDailyFinancials(c *fiber.Ctx) error {
	data, err := h.service.GetDailyFinancials(parseFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Gagal mengambil data chart"})
	}

	return c.JSON(fiber.Map{"data": data})
}
