package model

import "testing"

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name       string
		tagihan    float64
		bayar      float64
		wantSisa   float64
		wantStatus PaymentStatus
	}{
		{"belum lunas", 100000, 50000, 50000, StatusBelumLunas},
		{"lunas pas", 100000, 100000, 0, StatusLunas},
		{"lebih bayar", 100000, 150000, -50000, StatusLunas},
		{"tanpa bayar", 250000, 0, 250000, StatusBelumLunas},
		{"nol semua", 0, 0, 0, StatusLunas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := PORecord{TotalTagihan: tt.tagihan, TotalBayar: tt.bayar}
			rec.Recalculate()
			if rec.Sisa != tt.wantSisa {
				t.Errorf("Sisa = %v, want %v", rec.Sisa, tt.wantSisa)
			}
			if rec.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", rec.Status, tt.wantStatus)
			}
		})
	}
}

func TestRecalculateOverridesInputDerivedFields(t *testing.T) {
	rec := PORecord{
		TotalTagihan: 200000,
		TotalBayar:   50000,
		Sisa:         999,
		Status:       StatusLunas,
	}
	rec.Recalculate()
	if rec.Sisa != 150000 {
		t.Errorf("Sisa = %v, want 150000", rec.Sisa)
	}
	if rec.Status != StatusBelumLunas {
		t.Errorf("Status = %q, want %q", rec.Status, StatusBelumLunas)
	}
}
