package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sptryogi/tracking-po/internal/excel"
	"github.com/sptryogi/tracking-po/internal/format"
	"github.com/sptryogi/tracking-po/internal/model"
	"github.com/sptryogi/tracking-po/internal/repository"
	"github.com/sptryogi/tracking-po/internal/ws"

	"github.com/google/uuid"
)

// MissingColumnsError: header upload tidak memuat semua kolom wajib.
// Struktural, jadi seluruh import digagalkan tanpa menyentuh storage.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("format kolom tidak sesuai, kolom yang hilang: %s", strings.Join(e.Columns, ", "))
}

// RejectedRow adalah baris upload yang dilewati beserta alasannya
type RejectedRow struct {
	NoPo   string `json:"no_po"`
	Reason string `json:"reason"`
}

const (
	ReasonNoPoEmpty     = "no_po kosong"
	ReasonAlreadyExists = "sudah ada"
)

type ImportResult struct {
	BatchID  uuid.UUID        `json:"batch_id"`
	Accepted []model.PORecord `json:"-"`
	Inserted int              `json:"inserted"`
	Rejected []RejectedRow    `json:"rejected"`
}

type ImportService interface {
	ImportWorkbook(r io.Reader) (*ImportResult, error)
}

type importService struct {
	repo  repository.PORepository
	wsHub *ws.Hub
}

func NewImportService(repo repository.PORepository, hub *ws.Hub) ImportService {
	return &importService{repo: repo, wsHub: hub}
}

// ImportWorkbook membaca sheet pertama file upload, menormalkan isinya, lalu
// bulk-insert baris yang lolos. Baris duplikat / no_po kosong hanya dilewati,
// bukan membatalkan seluruh batch.
func (s *importService) ImportWorkbook(r io.Reader) (*ImportResult, error) {
	rows, err := excel.ReadFirstSheet(r)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.AllNoPo()
	if err != nil {
		return nil, err
	}

	result, err := NormalizeRows(rows, existing, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if len(result.Accepted) > 0 {
		if err := s.repo.CreateBatch(result.Accepted); err != nil {
			return nil, fmt.Errorf("gagal import data: %w", err)
		}
	}
	result.Inserted = len(result.Accepted)

	if result.Inserted > 0 {
		s.broadcast(result)
	}
	return result, nil
}

// NormalizeRows menjalankan pipeline normalisasi import terhadap isi mentah
// sheet (baris pertama header). Pure terhadap storage: set no_po yang sudah
// ada diberikan pemanggil, dan created_at distempel satu kali untuk seluruh
// batch dari stampedAt.
func NormalizeRows(rows [][]string, existingNoPo map[string]struct{}, stampedAt time.Time) (*ImportResult, error) {
	result := &ImportResult{
		BatchID:  uuid.New(),
		Rejected: []RejectedRow{},
	}

	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: append([]string{}, excel.RequiredColumns...)}
	}

	// header case-insensitive + trim, kolom ekstra diabaikan
	colIdx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := colIdx[key]; !ok {
			colIdx[key] = i
		}
	}

	var missing []string
	for _, col := range excel.RequiredColumns {
		if _, ok := colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	seen := make(map[string]struct{}, len(existingNoPo))
	for noPo := range existingNoPo {
		seen[noPo] = struct{}{}
	}

	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		cell := func(col string) string {
			idx := colIdx[col]
			if idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		noPo := strings.TrimSpace(cell("no_po"))
		if noPo == "" {
			result.Rejected = append(result.Rejected, RejectedRow{NoPo: noPo, Reason: ReasonNoPoEmpty})
			continue
		}
		// Duplikat dicek terhadap storage DAN baris yang sudah diterima
		// lebih dulu di batch yang sama.
		if _, dup := seen[noPo]; dup {
			result.Rejected = append(result.Rejected, RejectedRow{NoPo: noPo, Reason: ReasonAlreadyExists})
			continue
		}

		rec := model.PORecord{
			NoPo:         noPo,
			Customer:     strings.TrimSpace(cell("customer")),
			TotalTagihan: coerceNumber(cell("total_tagihan")),
			TotalBayar:   coerceNumber(cell("total_bayar")),
			Tanggal:      coerceDate(cell("tanggal")),
			JatuhTempo:   coerceDate(cell("jatuh_tempo")),
			CreatedAt:    stampedAt,
		}
		rec.Recalculate()

		seen[noPo] = struct{}{}
		result.Accepted = append(result.Accepted, rec)
	}

	return result, nil
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// coerceNumber memaksa nilai sel jadi angka; yang tidak bisa diparse jadi 0,
// bukan ditolak. Pemisah ribuan koma ditoleransi.
func coerceNumber(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// coerceDate menormalkan tanggal ke ISO; yang tidak bisa diparse jadi NULL
func coerceDate(s string) *string {
	iso := format.DisplayDate(s)
	if iso == "" {
		return nil
	}
	return &iso
}

func (s *importService) broadcast(result *ImportResult) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":     "po_update",
			"action":   "po_imported",
			"batch_id": result.BatchID,
			"inserted": result.Inserted,
			"rejected": len(result.Rejected),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
