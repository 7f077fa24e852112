package usecases

import (
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return email != "" && len(email) <= 255 && emailRe.MatchString(email)
}

// validMonth reports whether s is a calendar year-month token (YYYY-MM).
func validMonth(s string) bool {
	if len(s) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}
