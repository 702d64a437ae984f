package utils

import "strings"

// IsTruthy interprets checkbox style form values ("on", "true", "1", "yes").
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes", "y":
		return true
	}
	return false
}
