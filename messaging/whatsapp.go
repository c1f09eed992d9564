// Package messaging builds WhatsApp deep links with pre-filled coaching
// texts. Construction only: delivery belongs to whoever opens the link.
package messaging

import (
	"fmt"
	"net/url"
	"strings"
)

// maxMessageLength is WhatsApp's practical limit for pre-filled text.
const maxMessageLength = 4096

// countryCallingCodes maps the ISO country codes the agency operates in to
// their calling-code prefixes, for numbers stored without one.
var countryCallingCodes = map[string]string{
	"MX": "52",
	"CO": "57",
	"VE": "58",
}

// NormalizePhoneE164 strips formatting from a raw phone number and returns
// its digits-only E.164 form. Ten-digit numbers get the default country's
// calling code prefixed; numbers already carrying a prefix (or a leading "+")
// pass through. Returns an error when no plausible number remains.
func NormalizePhoneE164(raw, defaultCountry string) (string, error) {
	digits := keepDigits(raw)
	if digits == "" {
		return "", fmt.Errorf("phone %q contains no digits", raw)
	}

	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		return digits, nil
	}

	if len(digits) == 10 {
		cc, ok := countryCallingCodes[defaultCountry]
		if !ok {
			cc = countryCallingCodes["MX"]
		}
		return cc + digits, nil
	}

	if len(digits) >= 11 && len(digits) <= 15 {
		return digits, nil
	}

	return "", fmt.Errorf("phone %q has %d digits, expected 10-15", raw, len(digits))
}

// Link builds a https://wa.me deep link that opens a chat with the given
// E.164 number and the message pre-filled. Messages beyond WhatsApp's limit
// are truncated rather than rejected.
func Link(e164, message string) string {
	if len(message) > maxMessageLength {
		message = message[:maxMessageLength]
	}
	u := url.URL{
		Scheme: "https",
		Host:   "wa.me",
		Path:   "/" + e164,
	}
	q := url.Values{}
	q.Set("text", message)
	u.RawQuery = q.Encode()
	return u.String()
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
