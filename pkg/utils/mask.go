package utils

import "strings"

// MaskUsername hides most of a login identifier so it can appear in logs
// without leaking the account. Keeps the first two characters and, for
// email-shaped identifiers, the domain.
func MaskUsername(username string) string {
	if username == "" {
		return ""
	}

	local := username
	domain := ""
	if at := strings.IndexByte(username, '@'); at >= 0 {
		local = username[:at]
		domain = username[at:]
	}

	if len(local) <= 2 {
		return strings.Repeat("*", len(local)) + domain
	}
	return local[:2] + strings.Repeat("*", len(local)-2) + domain
}
