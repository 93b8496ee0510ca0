package identity

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/checksum"
	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/random"
	"github.com/syntorio/synthid/internal/errors"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestContext(t *testing.T, seed int64) *engine.Context {
	t.Helper()

	registry := dictionary.NewEmbeddedRegistry()

	return engine.NewContext(random.New(seed), registry, func() time.Time { return testNow })
}

func TestModuleGenerate(t *testing.T) {
	t.Run("Success_DeterministicAcrossEqualSeeds", func(t *testing.T) {
		first, err := New().Generate(Params{}, newTestContext(t, 42))
		require.NoError(t, err)
		second, err := New().Generate(Params{}, newTestContext(t, 42))
		require.NoError(t, err)

		assert.Equal(t, first.Payload, second.Payload)
		assert.Equal(t, first.Meta, second.Meta)
	})

	t.Run("Success_DivergesAcrossSeeds", func(t *testing.T) {
		first, err := New().Generate(Params{}, newTestContext(t, 1))
		require.NoError(t, err)
		second, err := New().Generate(Params{}, newTestContext(t, 2))
		require.NoError(t, err)

		assert.NotEqual(t, first.Payload, second.Payload)
	})

	t.Run("Success_ExactAgeRange", func(t *testing.T) {
		ageRange := engine.Range{Min: 30, Max: 30}
		result, err := New().Generate(Params{AgeRange: &ageRange}, newTestContext(t, 7))
		require.NoError(t, err)

		assert.Equal(t, 30, result.Payload.Personal.Age)
		assert.True(t, strings.HasPrefix(result.Payload.Personal.BirthDate, "1995-"))
		assert.Equal(t, 30, result.Meta.Stats["age"])
	})

	t.Run("Success_DefaultDocumentSet", func(t *testing.T) {
		result, err := New().Generate(Params{}, newTestContext(t, 11))
		require.NoError(t, err)

		docs := result.Payload.Documents
		require.NotNil(t, docs.Passport)
		assert.Len(t, docs.Passport.Number, 6)
		assert.Regexp(t, `^\d{2} \d{2}$`, docs.Passport.Series)
		assert.True(t, checksum.INNValid(docs.INN))
		assert.True(t, checksum.SNILSValid(docs.SNILS))
		assert.Nil(t, docs.DriverLicense)
		assert.Nil(t, docs.OMS)
	})

	t.Run("Success_EmptyIncludeSuppressesDocuments", func(t *testing.T) {
		result, err := New().Generate(Params{IncludeDocuments: []string{}}, newTestContext(t, 11))
		require.NoError(t, err)

		docs := result.Payload.Documents
		assert.Nil(t, docs.Passport)
		assert.Empty(t, docs.INN)
		assert.Empty(t, docs.SNILS)
		assert.Nil(t, docs.DriverLicense)
		assert.Nil(t, docs.OMS)
	})

	t.Run("Success_SupplementalDocuments", func(t *testing.T) {
		params := Params{IncludeDocuments: []string{
			DocumentPassport, DocumentINN, DocumentSNILS, DocumentDriverLicense, DocumentOMS,
		}}
		result, err := New().Generate(params, newTestContext(t, 13))
		require.NoError(t, err)

		docs := result.Payload.Documents
		require.NotNil(t, docs.DriverLicense)
		assert.Len(t, docs.DriverLicense.Number, 6)
		assert.NotEmpty(t, docs.DriverLicense.Categories)
		issue, err := time.Parse("2006-01-02", docs.DriverLicense.IssueDate)
		require.NoError(t, err)
		assert.Equal(t, issue.AddDate(10, 0, 0).Format("2006-01-02"), docs.DriverLicense.ExpiryDate)

		require.NotNil(t, docs.OMS)
		assert.Len(t, docs.OMS.Number, 16)
		assert.True(t, checksum.LuhnValid(docs.OMS.Number))
	})

	t.Run("Success_ExplicitRegion", func(t *testing.T) {
		result, err := New().Generate(Params{Region: "77"}, newTestContext(t, 17))
		require.NoError(t, err)

		payload := result.Payload
		assert.Equal(t, "77", payload.Address.Region)
		assert.True(t, strings.HasPrefix(payload.Address.PostalCode, "077"))
		require.NotNil(t, payload.Documents.Passport)
		assert.True(t, strings.HasPrefix(payload.Documents.Passport.Series, "77 "))
	})

	t.Run("Success_UnknownRegionFallsBack", func(t *testing.T) {
		result, err := New().Generate(Params{Region: "99"}, newTestContext(t, 19))
		require.NoError(t, err)

		assert.NotEqual(t, "99", result.Payload.Address.Region)
		assert.NotEmpty(t, result.Payload.Address.RegionName)
	})

	t.Run("Success_ExplicitGender", func(t *testing.T) {
		result, err := New().Generate(Params{Gender: GenderFemale}, newTestContext(t, 23))
		require.NoError(t, err)

		assert.Equal(t, GenderFemale, result.Payload.Personal.Gender)
		assert.True(t, strings.HasSuffix(result.Payload.Personal.MiddleName, "вна"))
		assert.Contains(t, result.Meta.Tags, "female")
	})

	t.Run("Success_NationalPhoneFormat", func(t *testing.T) {
		result, err := New().Generate(Params{PhoneFormat: PhoneNational}, newTestContext(t, 29))
		require.NoError(t, err)

		phone := result.Payload.Contacts.Phone
		assert.Regexp(t, `^\+7\d{10}$`, phone.E164)
		assert.Regexp(t, `^8 \(\d{3}\) \d{3}-\d{2}-\d{2}$`, phone.Formatted)
	})

	t.Run("Success_EmailShape", func(t *testing.T) {
		result, err := New().Generate(Params{}, newTestContext(t, 31))
		require.NoError(t, err)

		email := result.Payload.Contacts.Email
		assert.Regexp(t, regexp.MustCompile(`^[a-z0-9.]+@(mail\.ru|yandex\.ru|gmail\.com|outlook\.com)$`), email)
	})

	t.Run("Success_UniqueDocumentNumbersWithinModule", func(t *testing.T) {
		module := New()
		ctx := newTestContext(t, 37)
		seen := map[string]struct{}{}
		for i := 0; i < 50; i++ {
			result, err := module.Generate(Params{}, ctx)
			require.NoError(t, err)
			inn := result.Payload.Documents.INN
			_, dup := seen[inn]
			assert.False(t, dup, "inn %q repeated", inn)
			seen[inn] = struct{}{}
		}
	})

	t.Run("Error_UnknownGender", func(t *testing.T) {
		_, err := New().Generate(Params{Gender: "other"}, newTestContext(t, 41))
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("Error_InvertedAgeRange", func(t *testing.T) {
		ageRange := engine.Range{Min: 40, Max: 20}
		_, err := New().Generate(Params{AgeRange: &ageRange}, newTestContext(t, 43))
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestModuleValidate(t *testing.T) {
	t.Run("Success_GeneratedPayloadIsValid", func(t *testing.T) {
		module := New()
		result, err := module.Generate(Params{IncludeDocuments: []string{
			DocumentPassport, DocumentINN, DocumentSNILS, DocumentDriverLicense, DocumentOMS,
		}}, newTestContext(t, 47))
		require.NoError(t, err)

		validation := module.Validate(&result.Payload)
		assert.True(t, validation.Valid, "issues: %+v", validation.Issues)
		assert.Empty(t, validation.Issues)
	})

	t.Run("Error_CorruptedChecksums", func(t *testing.T) {
		module := New()
		result, err := module.Generate(Params{}, newTestContext(t, 53))
		require.NoError(t, err)

		payload := result.Payload
		payload.Documents.INN = "770708389300"
		payload.Documents.SNILS = "112-233-445 00"
		payload.Address.PostalCode = "123"

		validation := module.Validate(&payload)
		require.False(t, validation.Valid)
		paths := make([]string, 0, len(validation.Issues))
		for _, issue := range validation.Issues {
			paths = append(paths, issue.Path)
		}
		assert.Contains(t, paths, "documents.inn")
		assert.Contains(t, paths, "documents.snils")
		assert.Contains(t, paths, "address.postal_code")
	})
}

func TestPatronymicFrom(t *testing.T) {
	tests := []struct {
		father string
		gender Gender
		want   string
	}{
		{"Иван", GenderMale, "Иванович"},
		{"Иван", GenderFemale, "Ивановна"},
		{"Сергей", GenderMale, "Сергеевич"},
		{"Сергей", GenderFemale, "Сергеевна"},
		{"Игорь", GenderMale, "Игоревич"},
		{"Никита", GenderMale, "Никитович"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, patronymicFrom(tt.father, tt.gender))
		})
	}
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Жанна", "zhanna"},
		{"Щукин", "schukin"},
		{"Объём", "obem"},
		{"Юрьев", "yurev"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, transliterate(tt.input))
		})
	}
}
