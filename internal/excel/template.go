package excel

import (
	"github.com/xuri/excelize/v2"
)

// ContentType adalah MIME type file .xlsx yang dikirim ke browser
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RequiredColumns adalah kolom wajib pada file upload, urutannya juga dipakai
// sebagai header template.
var RequiredColumns = []string{"no_po", "customer", "total_tagihan", "total_bayar", "tanggal", "jatuh_tempo"}

// BuildTemplate menghasilkan template Excel kosong: satu sheet berisi header
// kolom wajib plus satu baris contoh sebagai panduan pengisian.
func BuildTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "template"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(RequiredColumns))
	for i, col := range RequiredColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	sample := []interface{}{"PO-001", "PT. Contoh", 100000, 50000, "2025-11-27", "2025-12-10"}
	if err := f.SetSheetRow(sheet, "A2", &sample); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
