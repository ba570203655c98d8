package handler

import (
	"errors"
	"strconv"

	"github.com/sptryogi/tracking-po/internal/excel"
	"github.com/sptryogi/tracking-po/internal/model"
	"github.com/sptryogi/tracking-po/internal/repository"
	"github.com/sptryogi/tracking-po/internal/service"

	"github.com/gofiber/fiber/v2"
)

type POHandler struct {
	service       service.POService
	importService service.ImportService
}

func NewPOHandler(s service.POService, imp service.ImportService) *POHandler {
	return &POHandler{service: s, importService: imp}
}

// parseFilter membaca filter dashboard dari query params (semuanya opsional)
func parseFilter(c *fiber.Ctx) repository.POFilter {
	filter := repository.POFilter{
		Status:    c.Query("status"),
		StartDate: c.Query("start"),
		EndDate:   c.Query("end"),
	}
	if monthStr := c.Query("month"); monthStr != "" {
		if month, err := strconv.Atoi(monthStr); err == nil {
			filter.Month = month
		}
	}
	return filter
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

func (h *POHandler) GetPOs(c *fiber.Ctx) error {
	records, err := h.service.List(parseFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(records)
}

func (h *POHandler) GetPO(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "id harus berupa angka"})
	}

	record, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Record tidak ditemukan"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(record)
}

func (h *POHandler) CreatePO(c *fiber.Ctx) error {
	var record model.PORecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Create(&record); err != nil {
		switch {
		case errors.Is(err, service.ErrNoPoEmpty):
			return c.Status(400).JSON(fiber.Map{"error": "Nomor PO wajib diisi"})
		case errors.Is(err, service.ErrNoPoDuplicate):
			return c.Status(409).JSON(fiber.Map{"error": "no_po sudah ada, silahkan gunakan edit untuk mengubah"})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{"message": "Data PO berhasil disimpan", "data": record})
}

func (h *POHandler) UpdatePO(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "id harus berupa angka"})
	}

	var record model.PORecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.Update(id, &record)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Record tidak ditemukan"})
		case errors.Is(err, service.ErrNoPoEmpty):
			return c.Status(400).JSON(fiber.Map{"error": "Nomor PO wajib diisi"})
		case errors.Is(err, service.ErrNoPoDuplicate):
			return c.Status(409).JSON(fiber.Map{"error": "no_po sudah ada, silahkan gunakan nomor lain"})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Record berhasil diupdate", "data": updated})
}

func (h *POHandler) DeletePO(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "id harus berupa angka"})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Record tidak ditemukan"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Gagal menghapus data"})
	}

	return c.JSON(fiber.Map{"message": "Record berhasil dihapus"})
}

func (h *POHandler) ImportPOs(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "File upload tidak ditemukan, gunakan field 'file'"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Gagal membaca file upload"})
	}
	defer file.Close()

	result, err := h.importService.ImportWorkbook(file)
	if err != nil {
		var missingErr *service.MissingColumnsError
		if errors.As(err, &missingErr) {
			return c.Status(400).JSON(fiber.Map{
				"error":           "Format kolom tidak sesuai",
				"missing_columns": missingErr.Columns,
				"required":        excel.RequiredColumns,
			})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":  "Import selesai",
		"batch_id": result.BatchID,
		"inserted": result.Inserted,
		"rejected": result.Rejected,
	})
}

func (h *POHandler) DownloadTemplate(c *fiber.Ctx) error {
	data, err := excel.BuildTemplate()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Gagal membuat template"})
	}

	c.Set(fiber.HeaderContentType, excel.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="template_po.xlsx"`)
	return c.Send(data)
}

func (h *POHandler) ExportReport(c *fiber.Ctx) error {
	records, err := h.service.List(parseFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	data, err := excel.BuildReport(records, nil)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Gagal membuat laporan"})
	}

	c.Set(fiber.HeaderContentType, excel.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="Laporan_PO.xlsx"`)
	return c.Send(data)
}
