// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"

	validation "github.com/jellydator/validation"

	"github.com/syntorio/synthid/internal/engine/identity"
	apperrors "github.com/syntorio/synthid/internal/errors"
)

var (
	// regionCodeRegex matches two-digit federal subject codes.
	regionCodeRegex = regexp.MustCompile(`^[0-9]{2}$`)

	// currencyCodeRegex matches ISO 4217 alphabetic currency codes.
	currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

	knownDocuments = map[string]struct{}{
		identity.DocumentPassport:      {},
		identity.DocumentINN:           {},
		identity.DocumentSNILS:         {},
		identity.DocumentDriverLicense: {},
		identity.DocumentOMS:           {},
	}
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Gender validates that a string is a supported gender selector.
// Empty strings are allowed; absence falls back to a random pick.
var Gender = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_gender_type", "must be a string")
	}
	switch identity.Gender(s) {
	case "", identity.GenderMale, identity.GenderFemale, identity.GenderRandom:
		return nil
	}
	return validation.NewError("validation_gender", "must be one of: male, female, random")
})

// PhoneFormat validates that a string is a supported phone rendering format.
var PhoneFormat = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_phone_format_type", "must be a string")
	}
	switch identity.PhoneFormat(s) {
	case "", identity.PhoneInternational, identity.PhoneNational:
		return nil
	}
	return validation.NewError(
		"validation_phone_format",
		"must be one of: international, national",
	)
})

// DocumentName validates that a string names a known document generator.
var DocumentName = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_document_type", "must be a string")
	}
	if _, known := knownDocuments[s]; !known {
		return validation.NewError(
			"validation_document",
			"must be one of: passport, inn, snils, driver_license, oms",
		)
	}
	return nil
})

// RegionCode validates that a string is a two-digit region code.
// Empty strings are allowed; absence selects a weighted random region.
var RegionCode = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_region_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if !regionCodeRegex.MatchString(s) {
		return validation.NewError("validation_region", "must be a two-digit region code")
	}
	return nil
})

// CurrencyCode validates that a string is an ISO 4217 alphabetic code.
// Empty strings are allowed; absence selects the default currency.
var CurrencyCode = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_currency_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if !currencyCodeRegex.MatchString(s) {
		return validation.NewError(
			"validation_currency",
			"must be a three-letter uppercase currency code",
		)
	}
	return nil
})
