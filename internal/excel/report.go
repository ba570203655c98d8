package excel

import (
	"github.com/sptryogi/tracking-po/internal/format"
	"github.com/sptryogi/tracking-po/internal/model"

	"github.com/xuri/excelize/v2"
)

// ReportColumns adalah urutan kolom default laporan
var ReportColumns = []string{
	"id", "no_po", "customer", "total_tagihan", "total_bayar",
	"sisa", "status", "tanggal", "jatuh_tempo", "created_at",
}

var numericColumns = map[string]bool{
	"total_tagihan": true,
	"total_bayar":   true,
	"sisa":          true,
}

// BuildReport merender record hasil filter menjadi workbook "Laporan PO".
// Urutan baris mengikuti urutan input. Styling header dan number format
// kolom nominal hanya alat bantu visual.
func BuildReport(records []model.PORecord, columns []string) ([]byte, error) {
	if len(columns) == 0 {
		columns = ReportColumns
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Laporan PO"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F81BD"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	numFmt := "#,##0"
	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, rec := range records {
		rowNum := i + 2
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			row[j] = cellValue(&rec, col)
		}
		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return nil, err
		}
	}

	// number format kolom nominal, dari baris 2 ke bawah
	if len(records) > 0 {
		for j, col := range columns {
			if !numericColumns[col] {
				continue
			}
			top, _ := excelize.CoordinatesToCellName(j+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(j+1, len(records)+1)
			if err := f.SetCellStyle(sheet, top, bottom, numberStyle); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellValue(rec *model.PORecord, column string) interface{} {
	switch column {
	case "id":
		return rec.ID
	case "no_po":
		return rec.NoPo
	case "customer":
		return rec.Customer
	case "total_tagihan":
		return rec.TotalTagihan
	case "total_bayar":
		return rec.TotalBayar
	case "sisa":
		return rec.Sisa
	case "status":
		return string(rec.Status)
	case "tanggal":
		return displayDatePtr(rec.Tanggal)
	case "jatuh_tempo":
		return displayDatePtr(rec.JatuhTempo)
	case "created_at":
		return format.JakartaTimestamp(rec.CreatedAt)
	default:
		return ""
	}
}

func displayDatePtr(s *string) string {
	if s == nil {
		return ""
	}
	return format.DisplayDate(*s)
}
