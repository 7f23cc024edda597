package kyc

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// ErrInvalidPAN is returned when a PAN fails the format check. No external
// lookup ever happens for an invalid PAN.
var ErrInvalidPAN = eris.New("kyc: invalid PAN format, expected ABCDE1234F")

// NormalizePAN uppercases and trims a PAN and validates its format.
func NormalizePAN(pan string) (string, error) {
	pan = strings.ToUpper(strings.TrimSpace(pan))
	if !panPattern.MatchString(pan) {
		return "", ErrInvalidPAN
	}
	return pan, nil
}

// MaskPAN keeps the first five characters and masks the rest. Audit entries
// and logs never carry a full PAN.
func MaskPAN(pan string) string {
	if len(pan) <= 5 {
		return pan
	}
	return pan[:5] + "****"
}

// MaskAadhaar renders the stored form of an Aadhaar number from its last
// four digits.
func MaskAadhaar(last4 string) string {
	if last4 == "" {
		return ""
	}
	return "XXXX-XXXX-" + last4
}
