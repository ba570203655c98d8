package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/sptryogi/tracking-po/internal/model"

	"github.com/xuri/excelize/v2"
)

func TestBuildTemplate(t *testing.T) {
	data, err := BuildTemplate()
	if err != nil {
		t.Fatalf("BuildTemplate: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "template" {
		t.Fatalf("sheets = %v, want [template]", sheets)
	}

	rows, err := f.GetRows("template")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 contoh", len(rows))
	}

	for i, col := range RequiredColumns {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "PO-001" || rows[1][1] != "PT. Contoh" {
		t.Errorf("baris contoh = %v", rows[1])
	}
}

func TestBuildReport(t *testing.T) {
	tanggal := "2025-11-27"
	records := []model.PORecord{
		{ID: 1, NoPo: "PO-1", Customer: "PT. A", TotalTagihan: 100000, TotalBayar: 50000, Tanggal: &tanggal, CreatedAt: time.Date(2025, 11, 27, 3, 0, 0, 0, time.UTC)},
		{ID: 2, NoPo: "PO-2", Customer: "PT. B", TotalTagihan: 200000, TotalBayar: 200000},
	}
	for i := range records {
		records[i].Recalculate()
	}

	data, err := BuildReport(records, nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Laporan PO" {
		t.Fatalf("sheets = %v, want [Laporan PO]", sheets)
	}

	rows, err := f.GetRows("Laporan PO")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 data", len(rows))
	}

	for i, col := range ReportColumns {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	// urutan baris mengikuti urutan input
	if rows[1][1] != "PO-1" || rows[2][1] != "PO-2" {
		t.Errorf("urutan baris: %q, %q", rows[1][1], rows[2][1])
	}
	// kolom nominal memakai number format ribuan
	if rows[1][3] != "100,000" {
		t.Errorf("total_tagihan tampil = %q, want 100,000", rows[1][3])
	}
	if rows[1][6] != "Belum Lunas" || rows[2][6] != "Lunas" {
		t.Errorf("status = %q / %q", rows[1][6], rows[2][6])
	}
	if rows[1][7] != "2025-11-27" {
		t.Errorf("tanggal = %q", rows[1][7])
	}
	// created_at dikonversi ke WIB
	if rows[1][9] != "2025-11-27 10:00:00" {
		t.Errorf("created_at tampil = %q, want 2025-11-27 10:00:00", rows[1][9])
	}
}

func TestBuildReportEmpty(t *testing.T) {
	data, err := BuildReport(nil, nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Laporan PO")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want hanya header", len(rows))
	}
}

func TestBuildReportCustomColumns(t *testing.T) {
	records := []model.PORecord{{ID: 1, NoPo: "PO-1", TotalTagihan: 5000}}
	records[0].Recalculate()

	data, err := BuildReport(records, []string{"no_po", "sisa", "status"})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("Laporan PO")
	if len(rows[0]) != 3 || rows[0][0] != "no_po" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "Belum Lunas" {
		t.Errorf("status = %q", rows[1][2])
	}
}
