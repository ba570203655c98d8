package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sptryogi/tracking-po/internal/format"
	"github.com/sptryogi/tracking-po/internal/model"
	"github.com/sptryogi/tracking-po/internal/repository"
	"github.com/sptryogi/tracking-po/internal/ws"
	"github.com/sptryogi/tracking-po/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrNoPoEmpty     = errors.New("no_po wajib diisi")
	ErrNoPoDuplicate = errors.New("no_po sudah ada")
	ErrNotFound      = errors.New("record tidak ditemukan")
)

type POService interface {
	List(filter repository.POFilter) ([]model.PORecord, error)
	Get(id uint) (*model.PORecord, error)
	Create(req *model.PORecord) error
	Update(id uint, req *model.PORecord) (*model.PORecord, error)
	Delete(id uint) error
}

type poService struct {
	repo  repository.PORepository
	wsHub *ws.Hub
}

func NewPOService(repo repository.PORepository, hub *ws.Hub) POService {
	return &poService{repo: repo, wsHub: hub}
}

func (s *poService) List(filter repository.POFilter) ([]model.PORecord, error) {
	return s.repo.FindAll(filter)
}

func (s *poService) Get(id uint) (*model.PORecord, error) {
	record, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *poService) Create(req *model.PORecord) error {
	req.NoPo = strings.TrimSpace(req.NoPo)
	if req.NoPo == "" {
		return ErrNoPoEmpty
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validasi gagal: field '%s' pada aturan '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// Cek duplikasi no_po. Catatan: cek dan insert adalah dua round trip
	// terpisah; unique index di po_sales adalah penjaga terakhir bila dua
	// request bersamaan lolos cek ini.
	exists, err := s.repo.ExistsNoPo(req.NoPo)
	if err != nil {
		return err
	}
	if exists {
		return ErrNoPoDuplicate
	}

	req.Recalculate()
	req.CreatedAt = time.Now().In(format.Jakarta)

	if err := s.repo.Create(req); err != nil {
		return err
	}

	s.broadcast("po_created", req)
	return nil
}

func (s *poService) Update(id uint, req *model.PORecord) (*model.PORecord, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	noPo := strings.TrimSpace(req.NoPo)
	if noPo == "" {
		return nil, ErrNoPoEmpty
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validasi gagal: field '%s' pada aturan '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// Duplikasi hanya perlu dicek bila no_po berubah, dan selalu dengan
	// mengecualikan id record ini sendiri.
	if noPo != existing.NoPo {
		exists, err := s.repo.ExistsNoPoExcluding(noPo, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrNoPoDuplicate
		}
	}

	updated := *existing
	updated.NoPo = noPo
	updated.Customer = req.Customer
	updated.TotalTagihan = req.TotalTagihan
	updated.TotalBayar = req.TotalBayar
	updated.Tanggal = req.Tanggal
	updated.JatuhTempo = req.JatuhTempo
	updated.Recalculate()

	// created_at tidak pernah ikut di-update
	fields := map[string]interface{}{
		"no_po":         updated.NoPo,
		"customer":      updated.Customer,
		"total_tagihan": updated.TotalTagihan,
		"total_bayar":   updated.TotalBayar,
		"sisa":          updated.Sisa,
		"status":        updated.Status,
		"tanggal":       updated.Tanggal,
		"jatuh_tempo":   updated.JatuhTempo,
	}
	if err := s.repo.Update(id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.broadcast("po_updated", &updated)
	return &updated, nil
}

func (s *poService) Delete(id uint) error {
	record, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.broadcast("po_deleted", record)
	return nil
}

func (s *poService) broadcast(action string, rec *model.PORecord) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "po_update",
			"action": action,
			"record": map[string]interface{}{
				"id":     rec.ID,
				"no_po":  rec.NoPo,
				"sisa":   rec.Sisa,
				"status": rec.Status,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
