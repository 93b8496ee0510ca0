package checksum

import (
	"strings"

	apperrors "github.com/syntorio/synthid/internal/errors"
)

// snilsForbiddenPrefixes lists 3-digit prefixes that may not start a SNILS
// base number.
var snilsForbiddenPrefixes = []string{"000", "001", "002"}

// SNILSChecksum computes the two-digit checksum for a 9-digit SNILS base.
// Each base digit is multiplied by a strictly decreasing weight from 9 down
// to 1; a sum below 100 is the checksum itself, a sum (or mod-101 remainder)
// of 100 or 101 becomes 0, anything larger reduces modulo 101.
func SNILSChecksum(base string) (int, error) {
	digits, err := toDigits(base)
	if err != nil {
		return 0, err
	}
	if len(digits) != 9 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "snils: base must be exactly 9 digits")
	}

	sum := 0
	for i, d := range digits {
		sum += d * (9 - i)
	}

	if sum > 101 {
		sum %= 101
	}
	if sum == 100 || sum == 101 {
		sum = 0
	}
	return sum, nil
}

// SNILSPrefixAllowed reports whether the first three digits of a SNILS base
// are outside the forbidden set.
func SNILSPrefixAllowed(base string) bool {
	if len(base) < 3 {
		return false
	}
	prefix := base[:3]
	for _, forbidden := range snilsForbiddenPrefixes {
		if prefix == forbidden {
			return false
		}
	}
	return true
}

// SNILSValid reports whether a formatted SNILS ("XXX-XXX-XXX YY") carries a
// correct checksum and an allowed prefix.
func SNILSValid(snils string) bool {
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(snils)
	if len(cleaned) != 11 {
		return false
	}

	base, check := cleaned[:9], cleaned[9:]
	if !SNILSPrefixAllowed(base) {
		return false
	}

	expected, err := SNILSChecksum(base)
	if err != nil {
		return false
	}

	checkDigits, err := toDigits(check)
	if err != nil {
		return false
	}
	return checkDigits[0]*10+checkDigits[1] == expected
}
