// Package checksum implements the check-digit schemes used by generated
// identifiers: Luhn for payment card numbers, the mod-11 double checksum for
// tax IDs (INN), and the weighted-sum scheme for insurance numbers (SNILS).
// All functions are pure; generators compute digits, validators recompute and
// compare.
package checksum

import (
	apperrors "github.com/syntorio/synthid/internal/errors"
)

// LuhnCheckDigit calculates the Luhn check digit for a partial number (the
// digits without the check digit position).
func LuhnCheckDigit(partial string) (int, error) {
	digits, err := toDigits(partial)
	if err != nil {
		return 0, err
	}
	if len(digits) == 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "luhn: partial number must not be empty")
	}

	sum := 0
	length := len(digits)

	// Double every second digit counting from the rightmost position of the
	// partial number, which sits immediately left of the future check digit.
	for i := 0; i < length; i++ {
		digit := digits[length-1-i]
		if i%2 == 0 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}

	return (10 - sum%10) % 10, nil
}

// LuhnValid reports whether a complete number (including its check digit)
// passes Luhn validation.
func LuhnValid(number string) bool {
	digits, err := toDigits(number)
	if err != nil || len(digits) < 2 {
		return false
	}

	sum := 0
	length := len(digits)

	for i := 0; i < length; i++ {
		digit := digits[length-1-i]
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}

	return sum%10 == 0
}

// toDigits converts a numeric string into its digit values.
func toDigits(s string) ([]int, error) {
	digits := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "number must contain only digits")
		}
		digits[i] = int(c - '0')
	}
	return digits, nil
}
