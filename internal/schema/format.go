package schema

import "strings"

// FormatDate rewrites compact filing dates (YYYYMMDD) as YYYY-MM-DD. There
// is no calendar validation: real filings carry dates like 20081131 and the
// raw value must survive. Anything that is not eight digits passes through
// unchanged, so an already-formatted date is stable.
func FormatDate(value string) string {
	if len(value) != 8 {
		return value
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return value
		}
	}
	return value[:4] + "-" + value[4:6] + "-" + value[6:]
}

// FormatAmount decodes amounts per FEC_v300.doc and its kin: a value without
// a decimal separator carries implied cents in its last two digits.
func FormatAmount(value string) string {
	if strings.Contains(value, ".") {
		return value
	}
	for len(value) < 3 {
		value = "0" + value
	}
	return value[:len(value)-2] + "." + value[len(value)-2:]
}

// FormatStrip trims surrounding whitespace.
func FormatStrip(value string) string {
	return strings.TrimSpace(value)
}
