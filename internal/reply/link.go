// Package reply builds every outbound message: redirects with wa.me
// deep links, identity data requests, department notifications and
// the fixed notices. Greeting and phrasing variants are chosen with
// an injectable random source so replies never look templated twice
// in a row.
package reply

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/dcamposl/uniwabot-go/internal/errors"
)

const (
	waBaseURL = "https://wa.me/"

	// maxLinkMessageLength keeps the encoded URL well under client limits.
	maxLinkMessageLength = 1000

	countryCode = "591"
)

// ValidateNumber normalizes a WhatsApp number: digits only, 10 to 15
// of them, starting with the Bolivian country code.
func ValidateNumber(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := digits.String()

	if len(number) < 10 || len(number) > 15 {
		return "", errors.NewValidationError("phone", "must contain 10 to 15 digits")
	}
	if !strings.HasPrefix(number, countryCode) {
		return "", errors.NewValidationError("phone", "must include country code "+countryCode)
	}
	return number, nil
}

// BuildLink returns a wa.me deep link that opens a chat with number
// and the given text prefilled. The text is truncated before encoding
// so the final URL stays within client limits.
func BuildLink(number, text string) (string, error) {
	validated, err := ValidateNumber(number)
	if err != nil {
		return "", err
	}

	if len(text) > maxLinkMessageLength {
		text = truncate(text, maxLinkMessageLength-3) + "..."
	}
	return waBaseURL + validated + "?text=" + encodeComponent(text), nil
}

// BuildShortLink returns a wa.me link without prefilled text.
func BuildShortLink(number string) (string, error) {
	validated, err := ValidateNumber(number)
	if err != nil {
		return "", err
	}
	return waBaseURL + validated, nil
}

// truncate cuts at a rune boundary at or below n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// encodeComponent escapes text for a URL query value using %20 for
// spaces, matching what WhatsApp clients expect in wa.me links.
func encodeComponent(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
