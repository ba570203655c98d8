package repository

import (
	"github.com/sptryogi/tracking-po/internal/model"

	"gorm.io/gorm"
)

// POFilter adalah filter dashboard: status pembayaran, bulan transaksi (1-12),
// dan rentang tanggal transaksi (ISO date string). Zero value = tanpa filter.
type POFilter struct {
	Status    string
	Month     int
	StartDate string
	EndDate   string
}

// POSummary untuk summary cards dashboard
type POSummary struct {
	TotalPO      int64   `json:"total_po"`
	TotalTagihan float64 `json:"total_tagihan"`
	TotalSisa    float64 `json:"total_sisa"`
}

// DailyFinancial untuk chart data (agregat per tanggal transaksi)
type DailyFinancial struct {
	Date         string  `json:"date"`
	TotalTagihan float64 `json:"total_tagihan"`
	TotalBayar   float64 `json:"total_bayar"`
	Sisa         float64 `json:"sisa"`
}

type PORepository interface {
	FindAll(filter POFilter) ([]model.PORecord, error)
	FindByID(id uint) (*model.PORecord, error)
	ExistsNoPo(noPo string) (bool, error)
	ExistsNoPoExcluding(noPo string, excludeID uint) (bool, error)
	AllNoPo() (map[string]struct{}, error)
	Create(rec *model.PORecord) error
	CreateBatch(recs []model.PORecord) error
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	Summary(filter POFilter) (*POSummary, error)
	DailyFinancials(filter POFilter) ([]DailyFinancial, error)
}

type poRepo struct {
	db *gorm.DB
}

func NewPORepo(db *gorm.DB) PORepository {
	return &poRepo{db}
}

// filtered membangun query dasar dengan POFilter diterapkan
func (r *poRepo) filtered(filter POFilter) *gorm.DB {
	q := r.db.Model(&model.PORecord{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Month >= 1 && filter.Month <= 12 {
		q = q.Where("EXTRACT(MONTH FROM tanggal) = ?", filter.Month)
	}
	if filter.StartDate != "" {
		q = q.Where("tanggal >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("tanggal <= ?", filter.EndDate)
	}
	return q
}

func (r *poRepo) FindAll(filter POFilter) ([]model.PORecord, error) {
	var records []model.PORecord
	err := r.filtered(filter).Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *poRepo) FindByID(id uint) (*model.PORecord, error) {
	var record model.PORecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *poRepo) ExistsNoPo(noPo string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PORecord{}).Where("no_po = ?", noPo).Limit(1).Count(&count).Error
	return count > 0, err
}

// ExistsNoPoExcluding mengecek duplikasi no_po dengan mengecualikan record
// miliknya sendiri, supaya edit tanpa ganti no_po tidak dianggap bentrok.
func (r *poRepo) ExistsNoPoExcluding(noPo string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.PORecord{}).
		Where("no_po = ? AND id <> ?", noPo, excludeID).
		Limit(1).Count(&count).Error
	return count > 0, err
}

func (r *poRepo) AllNoPo() (map[string]struct{}, error) {
	var noPos []string
	if err := r.db.Model(&model.PORecord{}).Pluck("no_po", &noPos).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(noPos))
	for _, n := range noPos {
		set[n] = struct{}{}
	}
	return set, nil
}

func (r *poRepo) Create(rec *model.PORecord) error {
	return r.db.Create(rec).Error
}

func (r *poRepo) CreateBatch(recs []model.PORecord) error {
	if len(recs) == 0 {
		return nil
	}
	return r.db.Create(&recs).Error
}

// Update menerima map kolom agar created_at tidak pernah ikut tertulis ulang
func (r *poRepo) Update(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&model.PORecord{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *poRepo) Delete(id uint) error {
	res := r.db.Delete(&model.PORecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *poRepo) Summary(filter POFilter) (*POSummary, error) {
	var summary POSummary

	if err := r.filtered(filter).Count(&summary.TotalPO).Error; err != nil {
		return nil, err
	}
	if err := r.filtered(filter).
		Select("COALESCE(SUM(total_tagihan), 0)").
		Scan(&summary.TotalTagihan).Error; err != nil {
		return nil, err
	}
	if err := r.filtered(filter).
		Select("COALESCE(SUM(sisa), 0)").
		Scan(&summary.TotalSisa).Error; err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *poRepo) DailyFinancials(filter POFilter) ([]DailyFinancial, error) {
	var results []DailyFinancial

	// Agregat tagihan/bayar/sisa per tanggal transaksi
	rows, err := r.filtered(filter).
		Select(`
			tanggal as date,
			COALESCE(SUM(total_tagihan), 0) as total_tagihan,
			COALESCE(SUM(total_bayar), 0) as total_bayar,
			COALESCE(SUM(sisa), 0) as sisa
		`).
		Where("tanggal IS NOT NULL").
		Group("tanggal").
		Order("tanggal ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyFinancial
		if err := rows.Scan(&data.Date, &data.TotalTagihan, &data.TotalBayar, &data.Sisa); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
