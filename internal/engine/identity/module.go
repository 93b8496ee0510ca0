package identity

import (
	"fmt"
	"time"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/checksum"
	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/random"
	"github.com/syntorio/synthid/internal/errors"
)

// ModuleName identifies the module in logs and metrics.
const ModuleName = "identity"

var requiredDictionaries = []string{
	dictionary.DatasetNames,
	dictionary.DatasetRegions,
	dictionary.DatasetCities,
	dictionary.DatasetStreets,
	dictionary.DatasetDivisionCodes,
}

// Module generates identity payloads. Document numbers are unique within
// one Module instance; the tracker may be shared across modules.
type Module struct {
	tracker *engine.Tracker
}

// New returns a Module with its own uniqueness tracker.
func New() *Module {
	return NewWithTracker(engine.NewTracker())
}

// NewWithTracker returns a Module using a shared uniqueness tracker.
func NewWithTracker(tracker *engine.Tracker) *Module {
	return &Module{tracker: tracker}
}

func (m *Module) Name() string {
	return ModuleName
}

// Seed warms the dictionary datasets the module draws from.
func (m *Module) Seed(registry *dictionary.Registry) error {
	return registry.Preload(requiredDictionaries...)
}

// Generate produces one identity payload. All randomness comes from the
// context source, so equal seeds and params yield equal payloads.
func (m *Module) Generate(params Params, ctx *engine.Context) (*engine.Result[Payload], error) {
	gender, err := resolveGender(params.Gender, ctx.Random)
	if err != nil {
		return nil, err
	}

	ageRange := defaultAgeRange
	if params.AgeRange != nil {
		ageRange = *params.AgeRange
	}
	personal, err := drawPersonal(gender, ageRange, ctx)
	if err != nil {
		return nil, err
	}

	regions, err := ctx.Dictionaries.Regions()
	if err != nil {
		return nil, err
	}
	cities, err := ctx.Dictionaries.Cities()
	if err != nil {
		return nil, err
	}
	streets, err := ctx.Dictionaries.Streets()
	if err != nil {
		return nil, err
	}

	region, err := resolveRegion(regions, params.Region, ctx.Random)
	if err != nil {
		return nil, err
	}
	city, err := resolveCity(cities, region.Code, ctx.Random)
	if err != nil {
		return nil, err
	}
	street, err := random.Weighted(ctx.Random, streets)
	if err != nil {
		return nil, errors.Wrap(err, "draw street")
	}
	address, err := drawAddress(region, city, street, ctx.Random)
	if err != nil {
		return nil, err
	}

	format := params.PhoneFormat
	if format == "" {
		format = PhoneInternational
	}
	contacts, err := drawContacts(personal.firstName, personal.lastName, format, ctx.Random)
	if err != nil {
		return nil, err
	}

	include := DefaultDocuments
	if params.IncludeDocuments != nil {
		include = params.IncludeDocuments
	}
	includeSet := make(map[string]struct{}, len(include))
	for _, name := range include {
		includeSet[name] = struct{}{}
	}
	divisions, err := ctx.Dictionaries.DivisionCodes()
	if err != nil {
		return nil, err
	}
	documents, err := m.drawDocuments(documentArgs{
		include:       includeSet,
		regionCode:    region.Code,
		birthDate:     personal.birthDate,
		divisionCodes: divisions,
	}, ctx)
	if err != nil {
		return nil, err
	}

	payload := Payload{
		Personal: PersonalInfo{
			FirstName:  personal.firstName,
			LastName:   personal.lastName,
			MiddleName: personal.middleName,
			Gender:     gender,
			BirthDate:  formatDate(personal.birthDate),
			Age:        personal.age,
			BirthPlace: city.Name,
		},
		Address:   address,
		Contacts:  contacts,
		Documents: documents,
	}

	return &engine.Result[Payload]{
		Payload: payload,
		Meta: engine.Meta{
			Tags:  []string{ModuleName, string(gender)},
			Stats: map[string]int{"age": personal.age},
		},
	}, nil
}

// Validate checks internal consistency of a generated payload.
func (m *Module) Validate(payload *Payload) engine.ValidationResult {
	var issues []engine.Issue
	add := func(path, code, format string, args ...any) {
		issues = append(issues, engine.Issue{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if payload.Personal.FirstName == "" {
		add("personal.first_name", "required", "first name is empty")
	}
	if payload.Personal.LastName == "" {
		add("personal.last_name", "required", "last name is empty")
	}
	switch payload.Personal.Gender {
	case GenderMale, GenderFemale:
	default:
		add("personal.gender", "invalid", "gender %q is not male or female", payload.Personal.Gender)
	}
	if _, err := time.Parse("2006-01-02", payload.Personal.BirthDate); err != nil {
		add("personal.birth_date", "format", "birth date %q is not YYYY-MM-DD", payload.Personal.BirthDate)
	}
	if payload.Personal.Age < 0 {
		add("personal.age", "range", "age %d is negative", payload.Personal.Age)
	}

	if payload.Address.Region == "" {
		add("address.region", "required", "region code is empty")
	}
	if len(payload.Address.PostalCode) != 6 {
		add("address.postal_code", "format", "postal code %q is not 6 digits", payload.Address.PostalCode)
	}

	if payload.Contacts.Phone.E164 != "" && len(payload.Contacts.Phone.E164) != 12 {
		add("contacts.phone.e164", "format", "phone %q is not a +7 number", payload.Contacts.Phone.E164)
	}
	if payload.Contacts.Email == "" {
		add("contacts.email", "required", "email is empty")
	}

	if payload.Documents.INN != "" && !checksum.INNValid(payload.Documents.INN) {
		add("documents.inn", "checksum", "inn %q fails its check digits", payload.Documents.INN)
	}
	if payload.Documents.SNILS != "" && !checksum.SNILSValid(payload.Documents.SNILS) {
		add("documents.snils", "checksum", "snils %q fails its checksum", payload.Documents.SNILS)
	}
	if oms := payload.Documents.OMS; oms != nil && !checksum.LuhnValid(oms.Number) {
		add("documents.oms.number", "checksum", "oms number %q fails the luhn check", oms.Number)
	}
	if passport := payload.Documents.Passport; passport != nil {
		if len(passport.Number) != 6 {
			add("documents.passport.number", "format", "passport number %q is not 6 digits", passport.Number)
		}
		if _, err := time.Parse("2006-01-02", passport.IssueDate); err != nil {
			add("documents.passport.issue_date", "format", "issue date %q is not YYYY-MM-DD", passport.IssueDate)
		}
	}

	return engine.ValidationResult{Valid: len(issues) == 0, Issues: issues}
}
