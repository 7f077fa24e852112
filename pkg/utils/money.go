package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount validates a decimal money string: non-negative, at most two
// fraction digits. It returns the canonical two-decimal form.
func ParseAmount(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("amount is required")
	}
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("amount must be a number")
	}
	// ParseFloat also accepts NaN and Inf, which are not money.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("amount must be a number")
	}
	if f < 0 {
		return "", fmt.Errorf("amount must be at least 0")
	}
	if frac := fracDigits(s); frac > 2 {
		return "", fmt.Errorf("amount supports at most 2 decimal places")
	}
	return strconv.FormatFloat(f, 'f', 2, 64), nil
}

// ValidAmount reports whether s passes ParseAmount.
func ValidAmount(s string) bool {
	_, err := ParseAmount(s)
	return err == nil
}

func fracDigits(s string) int {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(s) - i - 1
}
