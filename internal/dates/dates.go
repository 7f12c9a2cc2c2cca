// Package dates validates the date strings the feed flow accepts.
package dates

import (
	"regexp"
	"time"
)

const layout = "2006-01-02"

var pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValid reports whether raw is a YYYY-MM-DD string naming a real
// calendar date. Lexically well-formed but impossible dates such as
// 2024-02-30 are rejected.
func IsValid(raw string) bool {
	if !pattern.MatchString(raw) {
		return false
	}
	_, err := time.Parse(layout, raw)
	return err == nil
}
