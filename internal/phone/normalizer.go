// internal/phone/normalizer.go
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegionHints is the hint order tried for bare national numbers.
// Order matters: the same digits can be valid in more than one region and
// the first hint that validates wins.
var DefaultRegionHints = []string{"US", "GB", "CA", "AU", "IN"}

var (
	ErrEmptyNumber   = errors.New("empty phone number")
	ErrInvalidNumber = errors.New("invalid phone number")
)

// Normalize parses a raw phone string into canonical E.164 form.
//
// Input starting with "+" is parsed once in international mode and must pass
// the full validity check for its own region, not just a syntactic one.
// Anything else is parsed once per region hint, in the given order, and the
// first hint whose parse validates wins. A hint that fails to parse at all is
// a non-match, never a fatal error.
func Normalize(raw string, hints []string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyNumber
	}

	if strings.HasPrefix(trimmed, "+") {
		num, err := phonenumbers.Parse(trimmed, "")
		if err != nil || !phonenumbers.IsValidNumber(num) {
			return "", ErrInvalidNumber
		}
		return phonenumbers.Format(num, phonenumbers.E164), nil
	}

	if len(hints) == 0 {
		hints = DefaultRegionHints
	}
	for _, region := range hints {
		if e164, ok := tryRegion(trimmed, region); ok {
			return e164, nil
		}
	}
	return "", ErrInvalidNumber
}

// tryRegion attempts one region hint and reports whether it matched.
func tryRegion(raw, region string) (string, bool) {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}
