package extract

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	timeLayout     = "15:04:05"

	// fractionLayout is appended when a timestamp carries sub-second precision.
	fractionLayout = ".000000"
)

var (
	windowsEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	macEpoch     = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
)

// maxSerial is 9999-12-31 in the 1900 date system, the last representable date.
const maxSerial = 2958465

// formatBool renders a stored boolean ("1"/"0", "true"/"false") as True or False.
func formatBool(raw string) string {
	switch strings.ToLower(raw) {
	case "1", "true":
		return "True"
	default:
		return "False"
	}
}

// formatNumber renders a stored numeric value. Values written without a decimal point
// or exponent are integers of any size; everything else is a float in shortest round-trip form,
// switching to exponent notation below 1e-4 and from 1e16.
func formatNumber(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if !strings.ContainsAny(s, ".eE") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return strconv.FormatInt(n, 10), true
		}
		if errors.Is(err, strconv.ErrRange) {
			if b, ok := new(big.Int).SetString(s, 10); ok {
				return b.String(), true
			}
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	return formatFloat(v), true
}

func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}
	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatSerialDate converts an Excel serial date to text. The fraction of a day is
// rounded half-to-even to the millisecond. A serial in [0, 1) that stays within the day
// is a time of day; everything else is a full timestamp. The 1900 system counts the
// phantom 1900-02-29, so serials below 60 are shifted by one day. Sub-second values
// print six fractional digits.
func formatSerialDate(raw string, date1904 bool) (string, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 || v >= maxSerial+1 || math.IsNaN(v) {
		return "", false
	}
	day := math.Floor(v)
	ms := math.RoundToEven((v - day) * 86400 * 1000)
	diff := time.Duration(ms) * time.Millisecond
	if v < 1 && diff < 24*time.Hour {
		return formatTimestamp(time.Time{}.Add(diff), timeLayout), true
	}

	epoch := windowsEpoch
	if date1904 {
		epoch = macEpoch
	} else if v > 0 && v < 60 {
		day++
	}
	t := epoch.AddDate(0, 0, int(day)).Add(diff)
	return formatTimestamp(t, dateTimeLayout), true
}

func formatTimestamp(t time.Time, layout string) string {
	if t.Nanosecond() != 0 {
		layout += fractionLayout
	}
	return t.Format(layout)
}

// formatISODate renders a t="d" cell, which stores an ISO 8601 timestamp.
func formatISODate(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return formatTimestamp(t, dateTimeLayout)
		}
	}
	return raw
}

// isBuiltinDateFormat reports whether a built-in number format id is a date or time format.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	default:
		return false
	}
}

// isDateFormatCode reports whether a custom number format code formats dates or times.
// Quoted literals, escaped characters and bracketed sections such as colors are ignored.
func isDateFormatCode(code string) bool {
	if strings.EqualFold(code, "General") {
		return false
	}
	// Only the first section (positive numbers) decides.
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case inBracket:
			if r == ']' {
				inBracket = false
			}
		case r == '\\' || r == '_' || r == '*':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case r == ';':
			return containsDateToken(b.String())
		default:
			b.WriteRune(r)
		}
	}
	return containsDateToken(b.String())
}

func containsDateToken(s string) bool {
	return strings.ContainsAny(strings.ToLower(s), "dmyhs")
}
