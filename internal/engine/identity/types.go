// Package identity generates a person's name, birth data, address, contact
// info and identity documents as one internally consistent payload. The
// modeled document and address system is the Russian one: passport
// series/number with issuing office, INN tax ID, SNILS insurance number,
// Cyrillic names with patronymics.
package identity

import (
	"github.com/syntorio/synthid/internal/engine"
)

// Gender of the generated person.
type Gender string

// Supported genders.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	// GenderRandom requests a 50/50 coin flip.
	GenderRandom Gender = "random"
)

// PhoneFormat selects the display form of the generated phone number.
type PhoneFormat string

// Supported phone display formats.
const (
	PhoneInternational PhoneFormat = "international"
	PhoneNational      PhoneFormat = "national"
)

// Document type names accepted in Params.IncludeDocuments.
const (
	DocumentPassport      = "passport"
	DocumentINN           = "inn"
	DocumentSNILS         = "snils"
	DocumentDriverLicense = "driver_license"
	DocumentOMS           = "oms"
)

// DefaultDocuments is the document set generated when the caller does not
// pass an explicit inclusion list.
var DefaultDocuments = []string{DocumentPassport, DocumentINN, DocumentSNILS}

// defaultAgeRange is the inclusive age interval used when none is requested.
var defaultAgeRange = engine.Range{Min: 18, Max: 65}

// Params controls a single identity generation call.
type Params struct {
	// Gender is the requested gender; empty or GenderRandom flips a coin.
	Gender Gender `json:"gender,omitempty"`
	// AgeRange is the inclusive age interval; nil selects [18, 65].
	AgeRange *engine.Range `json:"age_range,omitempty"`
	// Region is an explicit region code. An unknown code silently falls back
	// to a weighted draw, tolerating partial dictionaries.
	Region string `json:"region,omitempty"`
	// IncludeDocuments lists the documents to generate. nil selects the
	// default set; an explicit empty list suppresses all documents.
	IncludeDocuments []string `json:"include_documents,omitempty"`
	// PhoneFormat selects the phone display form; empty means international.
	PhoneFormat PhoneFormat `json:"phone_format,omitempty"`
}

// PersonalInfo is the personal section of the payload.
type PersonalInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	Gender     Gender `json:"gender"`
	// BirthDate is formatted as YYYY-MM-DD.
	BirthDate  string `json:"birth_date"`
	Age        int    `json:"age"`
	BirthPlace string `json:"birth_place"`
}

// Address is the structured address section of the payload.
type Address struct {
	Region     string `json:"region"`
	RegionName string `json:"region_name"`
	City       string `json:"city"`
	Street     string `json:"street"`
	House      string `json:"house"`
	Apartment  string `json:"apartment,omitempty"`
	PostalCode string `json:"postal_code"`
}

// Phone carries the canonical and display forms of the same number.
type Phone struct {
	E164      string `json:"e164"`
	Formatted string `json:"formatted"`
}

// Contacts is the contact section of the payload.
type Contacts struct {
	Phone Phone  `json:"phone"`
	Email string `json:"email"`
}

// Passport is a national passport document.
type Passport struct {
	// Series is formatted as "RR YY" (region digits, issue-year digits).
	Series string `json:"series"`
	// Number is a 6-digit value, unique within the issuing module instance.
	Number   string `json:"number"`
	IssuedBy string `json:"issued_by"`
	// DivisionCode is formatted as "XXX-XXX".
	DivisionCode string `json:"division_code"`
	// IssueDate is formatted as YYYY-MM-DD.
	IssueDate string `json:"issue_date"`
}

// DriverLicense is a driving permit document.
type DriverLicense struct {
	// Series is formatted as "RRЛЛ" (region digits plus two Cyrillic letters).
	Series     string   `json:"series"`
	Number     string   `json:"number"`
	Categories []string `json:"categories"`
	IssueDate  string   `json:"issue_date"`
	ExpiryDate string   `json:"expiry_date"`
}

// OMS is a mandatory medical insurance policy.
type OMS struct {
	// Number is 16 digits ending in a Luhn check digit.
	Number    string `json:"number"`
	IssueDate string `json:"issue_date"`
}

// Documents holds the optional document section of the payload.
type Documents struct {
	Passport      *Passport      `json:"passport,omitempty"`
	INN           string         `json:"inn,omitempty"`
	SNILS         string         `json:"snils,omitempty"`
	DriverLicense *DriverLicense `json:"driver_license,omitempty"`
	OMS           *OMS           `json:"oms,omitempty"`
}

// Payload is the complete result of one identity generation call. It is
// immutable once produced and owned by the caller.
type Payload struct {
	Personal  PersonalInfo `json:"personal"`
	Address   Address      `json:"address"`
	Contacts  Contacts     `json:"contacts"`
	Documents Documents    `json:"documents"`
}
