package utils

import "strings"

// MaskEmail hides all of the local part but its first letter, so
// "ana.k@hostel.edu" logs as "a***@hostel.edu".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || domain == "" {
		return "***"
	}
	if local == "" {
		return "***@" + domain
	}
	first := []rune(local)[0]
	return string(first) + "***@" + domain
}
