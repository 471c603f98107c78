package resolver

import (
	"math"
	"strconv"
	"strings"
)

// Inflation adjustment is a flat linear approximation, not a CPI table.
// Amounts are scaled to referenceYear dollars; years outside the supported
// range pass through unchanged.
const (
	referenceYear       = 2024
	minAdjustableYear   = 1950
	annualInflationRate = 0.03
)

// ParseCurrency coerces a currency string such as "$1,234,567" to an
// integer dollar amount. Symbols and separators are stripped; only a
// leading sign and a decimal point survive. Unparsable input yields nil.
func ParseCurrency(s string) *int64 {
	f, ok := parseNumeric(s)
	if !ok {
		return nil
	}
	v := int64(math.Round(f))
	return &v
}

// ParsePercent coerces a percentage string such as "87%" to an integer.
// Unparsable input yields nil.
func ParsePercent(s string) *int {
	f, ok := parseNumeric(s)
	if !ok {
		return nil
	}
	v := int(math.Round(f))
	return &v
}

// ParseFraction coerces a score written as "NN/100" (the Metacritic
// format) to its numerator. Unparsable input yields nil.
func ParseFraction(s string) *int {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return ParsePercent(s)
}

// parseNumeric strips all characters except digits, a decimal point, and a
// leading sign, then parses the remainder as a float.
func parseNumeric(s string) (float64, bool) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case (r == '-' || r == '+') && i == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// InflationFactor returns the multiplier that converts nominal dollars in
// the given release year to reference-year dollars. Years outside the
// supported range, and unparsable years, map to 1.0.
func InflationFactor(year string) float64 {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < minAdjustableYear || y > referenceYear {
		return 1.0
	}
	return 1.0 + annualInflationRate*float64(referenceYear-y)
}

// AdjustForInflation scales a nominal amount from the given release year
// to reference-year dollars, rounded to the nearest dollar.
func AdjustForInflation(amount int64, year string) int64 {
	return int64(math.Round(float64(amount) * InflationFactor(year)))
}

// releaseYear extracts the four-digit year prefix of a release-date
// string, or "" when the date is absent or malformed.
func releaseYear(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return ""
	}
	year := date[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}
