// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/identity"
	customValidation "github.com/syntorio/synthid/internal/validation"
)

// RangeRequest is an inclusive integer interval in request bodies.
type RangeRequest struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Validate checks if the range request is valid.
func (r RangeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Min, validation.Min(0)),
		validation.Field(&r.Max, validation.Min(r.Min).Error("must be no less than min")),
	)
}

// ToEngineRange converts the request range to the engine representation.
func (r *RangeRequest) ToEngineRange() *engine.Range {
	if r == nil {
		return nil
	}
	return &engine.Range{Min: r.Min, Max: r.Max}
}

// GenerateProfileRequest contains the parameters for generating a profile.
// All fields are optional; an empty body generates a fully random identity
// with the default document set and no finance section.
type GenerateProfileRequest struct {
	// Seed pins the generation outcome; the same seed reproduces the same
	// identity and finance payloads.
	Seed             *int64        `json:"seed"`
	Gender           string        `json:"gender"`
	AgeRange         *RangeRequest `json:"age_range"`
	Region           string        `json:"region"`
	IncludeDocuments []string      `json:"include_documents"`
	PhoneFormat      string        `json:"phone_format"`

	IncludeFinance    bool          `json:"include_finance"`
	Currency          string        `json:"currency"`
	CardsRange        *RangeRequest `json:"cards_range"`
	TransactionsRange *RangeRequest `json:"transactions_range"`
}

// Validate checks if the generate profile request is valid.
func (r *GenerateProfileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Gender, customValidation.Gender),
		validation.Field(&r.AgeRange),
		validation.Field(&r.Region, customValidation.RegionCode),
		validation.Field(&r.IncludeDocuments,
			validation.Each(customValidation.DocumentName),
		),
		validation.Field(&r.PhoneFormat, customValidation.PhoneFormat),
		validation.Field(&r.Currency, customValidation.CurrencyCode),
		validation.Field(&r.CardsRange),
		validation.Field(&r.TransactionsRange),
	)
}

// IdentityParams maps the request to identity generation parameters.
func (r *GenerateProfileRequest) IdentityParams() identity.Params {
	return identity.Params{
		Gender:           identity.Gender(r.Gender),
		AgeRange:         r.AgeRange.ToEngineRange(),
		Region:           r.Region,
		IncludeDocuments: r.IncludeDocuments,
		PhoneFormat:      identity.PhoneFormat(r.PhoneFormat),
	}
}
