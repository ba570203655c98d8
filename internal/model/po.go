package model

import "time"

type PaymentStatus string

const (
	StatusLunas      PaymentStatus = "Lunas"
	StatusBelumLunas PaymentStatus = "Belum Lunas"
)

// PORecord adalah satu baris di tabel po_sales.
type PORecord struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	NoPo         string        `gorm:"column:no_po;type:varchar(100);uniqueIndex;not null" json:"no_po" validate:"required"`
	Customer     string        `gorm:"type:varchar(255)" json:"customer"`
	TotalTagihan float64       `gorm:"not null;default:0" json:"total_tagihan" validate:"gte=0"`
	TotalBayar   float64       `gorm:"not null;default:0" json:"total_bayar" validate:"gte=0"`
	Sisa         float64       `json:"sisa"`
	Status       PaymentStatus `gorm:"type:varchar(20)" json:"status"`
	Tanggal      *string       `gorm:"type:date" json:"tanggal"`
	JatuhTempo   *string       `gorm:"column:jatuh_tempo;type:date" json:"jatuh_tempo"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (PORecord) TableName() string {
	return "po_sales"
}

// Recalculate menghitung ulang sisa dan status dari total_tagihan/total_bayar.
// Semua jalur tulis (create, update, import) wajib lewat sini; sisa dan status
// tidak pernah diambil dari input.
func (r *PORecord) Recalculate() {
	r.Sisa = r.TotalTagihan - r.TotalBayar
	if r.Sisa <= 0 {
		r.Status = StatusLunas
	} else {
		r.Status = StatusBelumLunas
	}
}
