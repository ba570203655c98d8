// Package format berisi helper tampilan angka dan tanggal untuk dashboard
// dan laporan Excel.
package format

import (
	"strconv"
	"strings"
	"time"
)

// Jakarta adalah zona tampilan aplikasi (WIB, UTC+7). created_at disimpan
// sebagai instan UTC dan baru dikonversi saat ditampilkan.
var Jakarta = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}()

// Currency memformat nominal sebagai "100.000": dibulatkan ke bawah ke
// integer, dikelompokkan per ribuan dengan titik.
func Currency(v float64) string {
	n := int64(v)
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// CurrencyCell adalah varian longgar untuk nilai sel yang tipenya tidak
// pasti. Input yang tidak numerik dikembalikan apa adanya, tidak error.
func CurrencyCell(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return Currency(val)
	case float32:
		return Currency(float64(val))
	case int:
		return Currency(float64(val))
	case int64:
		return Currency(float64(val))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return val
		}
		return Currency(f)
	case nil:
		return ""
	default:
		return ""
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"02-01-2006",
}

// DisplayDate menormalkan string tanggal ke "YYYY-MM-DD". Input yang tidak
// bisa diparse menghasilkan string kosong, bukan error.
func DisplayDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// JakartaTimestamp memformat instan UTC sebagai waktu WIB "YYYY-MM-DD HH:MM:SS"
func JakartaTimestamp(t time.Time) string {
	return t.In(Jakarta).Format("2006-01-02 15:04:05")
}
