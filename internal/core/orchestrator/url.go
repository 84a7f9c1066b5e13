package orchestrator

import (
	"net/url"
	"strings"
)

// digitsOnly strips every non-digit rune.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildSendURL composes the per-target WhatsApp-Web navigation URL from a
// country code and local phone number, both reduced to digits-only.
func BuildSendURL(baseURL, countryCode, localNumber, text string) string {
	phone := digitsOnly(countryCode) + digitsOnly(localNumber)
	return strings.TrimRight(baseURL, "/") + "/send?phone=" + phone + "&text=" + url.QueryEscape(text)
}

// EntryURL is the readiness URL used by SessionManager.GetOrCreateSession.
func EntryURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/"
}
