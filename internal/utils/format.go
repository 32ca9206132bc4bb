package utils

import "strconv"

// FormatPrice renders an integer price with space-grouped thousands
func FormatPrice(price int) string {
	digits := strconv.Itoa(price)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ' ')
		}
		grouped = append(grouped, d)
	}

	if negative {
		return "-" + string(grouped)
	}
	return string(grouped)
}

// FormatPriceRange renders a min/max pair; equal bounds collapse to a single
// value
func FormatPriceRange(min, max int) string {
	if min == max {
		return FormatPrice(min)
	}
	return FormatPrice(min) + " — " + FormatPrice(max)
}
