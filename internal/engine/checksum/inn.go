package checksum

import (
	apperrors "github.com/syntorio/synthid/internal/errors"
)

// Positional weight vectors for the two INN check digits.
var (
	innWeightsFirst  = []int{7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
	innWeightsSecond = []int{3, 7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
)

// INNCheckDigits computes the two check digits for a 10-digit INN base. The
// first digit is the weighted dot product of the base modulo 11 (truncated to
// 0 when the remainder is 10), the second is the same scheme over the base
// plus the first check digit.
func INNCheckDigits(base string) (first, second int, err error) {
	digits, err := toDigits(base)
	if err != nil {
		return 0, 0, err
	}
	if len(digits) != 10 {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidInput, "inn: base must be exactly 10 digits")
	}

	first = innChecksum(digits, innWeightsFirst)
	second = innChecksum(append(digits, first), innWeightsSecond)
	return first, second, nil
}

// INNValid reports whether a full 12-digit INN carries correct check digits.
func INNValid(inn string) bool {
	digits, err := toDigits(inn)
	if err != nil || len(digits) != 12 {
		return false
	}

	first := innChecksum(digits[:10], innWeightsFirst)
	second := innChecksum(digits[:11], innWeightsSecond)
	return digits[10] == first && digits[11] == second
}

// innChecksum computes a single mod-11 weighted checksum digit, truncating a
// remainder of 10 to 0.
func innChecksum(digits, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * weights[i]
	}
	remainder := sum % 11
	if remainder >= 10 {
		return 0
	}
	return remainder
}
