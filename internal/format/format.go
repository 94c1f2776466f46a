// Package format renders numbers and dates the way the Korean locale
// displays them in reports.
package format

import (
	"strconv"
	"time"
)

// Number inserts thousands separators: 1234567 -> "1,234,567".
func Number(value int64) string {
	raw := strconv.FormatInt(value, 10)
	negative := false
	if raw[0] == '-' {
		negative = true
		raw = raw[1:]
	}

	var out []byte
	for i, digit := range []byte(raw) {
		if i > 0 && (len(raw)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}

// Date renders the ko-KR short date, e.g. "2024. 4. 15.".
func Date(t time.Time) string {
	return t.Format("2006. 1. 2.")
}
