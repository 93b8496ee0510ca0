package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/checksum"
	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/random"
	"github.com/syntorio/synthid/internal/errors"
)

// Tracker namespaces for document uniqueness.
const (
	spacePassportNumber = "identity.passport_number"
	spaceINN            = "identity.inn"
	spaceSNILS          = "identity.snils"
	spaceDriverLicense  = "identity.driver_license"
)

// licenseSeriesLetters are the Cyrillic letters allowed on license plates
// and permit series, chosen for having Latin look-alikes.
var licenseSeriesLetters = []rune("АВЕКМНОРСТУХ")

// licenseCategorySets are plausible category combinations for a permit.
var licenseCategorySets = [][]string{
	{"B"},
	{"B", "B1"},
	{"B", "C"},
	{"A", "B"},
}

type documentArgs struct {
	include       map[string]struct{}
	regionCode    string
	birthDate     time.Time
	divisionCodes []dictionary.DivisionCode
}

func (m *Module) drawDocuments(args documentArgs, ctx *engine.Context) (Documents, error) {
	var docs Documents

	if _, ok := args.include[DocumentPassport]; ok {
		passport, err := m.drawPassport(args.regionCode, args.birthDate, args.divisionCodes, ctx)
		if err != nil {
			return docs, err
		}
		docs.Passport = passport
	}

	if _, ok := args.include[DocumentINN]; ok {
		inn, err := m.drawINN(args.regionCode, ctx.Random)
		if err != nil {
			return docs, err
		}
		docs.INN = inn
	}

	if _, ok := args.include[DocumentSNILS]; ok {
		snils, err := m.drawSNILS(ctx.Random)
		if err != nil {
			return docs, err
		}
		docs.SNILS = snils
	}

	if _, ok := args.include[DocumentDriverLicense]; ok {
		license, err := m.drawDriverLicense(args.regionCode, args.birthDate, ctx)
		if err != nil {
			return docs, err
		}
		docs.DriverLicense = license
	}

	if _, ok := args.include[DocumentOMS]; ok {
		oms, err := m.drawOMS(args.birthDate, ctx)
		if err != nil {
			return docs, err
		}
		docs.OMS = oms
	}

	return docs, nil
}

func (m *Module) drawPassport(regionCode string, birthDate time.Time, divisions []dictionary.DivisionCode, ctx *engine.Context) (*Passport, error) {
	seriesRegion := lastTwoDigits(regionCode)
	issueYearOffset, err := ctx.Random.IntN(0, 20)
	if err != nil {
		return nil, err
	}
	issueYear := ctx.Now().Year() - issueYearOffset
	series := fmt.Sprintf("%s %02d", seriesRegion, issueYear%100)

	number, err := m.tracker.ClaimUnique(spacePassportNumber, func() (string, error) {
		n, err := ctx.Random.IntN(100000, 1000000)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%06d", n), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "passport number")
	}

	division, err := resolveDivision(divisions, regionCode, ctx.Random)
	if err != nil {
		return nil, err
	}

	issueDate, err := drawDateBetween(birthDate.AddDate(14, 0, 0), ctx.Now(), ctx.Random)
	if err != nil {
		return nil, err
	}

	return &Passport{
		Series:       series,
		Number:       number,
		IssuedBy:     division.Name,
		DivisionCode: division.Code,
		IssueDate:    formatDate(issueDate),
	}, nil
}

// resolveDivision prefers issuing offices of the resolved region and
// synthesizes a generic entry when the dictionary has none for it.
func resolveDivision(divisions []dictionary.DivisionCode, regionCode string, src *random.Source) (dictionary.DivisionCode, error) {
	pool := make([]dictionary.DivisionCode, 0, len(divisions))
	for _, entry := range divisions {
		if entry.Region == regionCode {
			pool = append(pool, entry)
		}
	}
	if len(pool) > 0 {
		division, err := random.Weighted(src, pool)
		if err != nil {
			return dictionary.DivisionCode{}, errors.Wrap(err, "draw division code")
		}
		return division, nil
	}

	part1, err := src.IntN(100, 1000)
	if err != nil {
		return dictionary.DivisionCode{}, err
	}
	part2, err := src.IntN(100, 1000)
	if err != nil {
		return dictionary.DivisionCode{}, err
	}
	return dictionary.DivisionCode{
		Code:   fmt.Sprintf("%d-%d", part1, part2),
		Region: regionCode,
		Name:   "ОУФМС России",
	}, nil
}

func (m *Module) drawINN(regionCode string, src *random.Source) (string, error) {
	inn, err := m.tracker.ClaimUnique(spaceINN, func() (string, error) {
		base := lastTwoDigits(regionCode)
		randomPart, err := drawDigits(src, 8)
		if err != nil {
			return "", err
		}
		base += randomPart
		first, second, err := checksum.INNCheckDigits(base)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%d%d", base, first, second), nil
	})
	if err != nil {
		return "", errors.Wrap(err, "inn")
	}
	return inn, nil
}

func (m *Module) drawSNILS(src *random.Source) (string, error) {
	base, err := m.tracker.ClaimUnique(spaceSNILS, func() (string, error) {
		for {
			candidate, err := drawDigits(src, 9)
			if err != nil {
				return "", err
			}
			if checksum.SNILSPrefixAllowed(candidate) {
				return candidate, nil
			}
		}
	})
	if err != nil {
		return "", errors.Wrap(err, "snils")
	}

	control, err := checksum.SNILSChecksum(base)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s %02d", base[0:3], base[3:6], base[6:9], control), nil
}

func (m *Module) drawDriverLicense(regionCode string, birthDate time.Time, ctx *engine.Context) (*DriverLicense, error) {
	var letters strings.Builder
	for i := 0; i < 2; i++ {
		idx, err := ctx.Random.IntN(0, len(licenseSeriesLetters))
		if err != nil {
			return nil, err
		}
		letters.WriteRune(licenseSeriesLetters[idx])
	}
	series := lastTwoDigits(regionCode) + letters.String()

	number, err := m.tracker.ClaimUnique(spaceDriverLicense, func() (string, error) {
		n, err := ctx.Random.IntN(100000, 1000000)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%06d", n), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "driver license number")
	}

	categories, err := random.Pick(ctx.Random, licenseCategorySets)
	if err != nil {
		return nil, err
	}

	issueDate, err := drawDateBetween(birthDate.AddDate(18, 0, 0), ctx.Now(), ctx.Random)
	if err != nil {
		return nil, err
	}

	return &DriverLicense{
		Series:     series,
		Number:     number,
		Categories: categories,
		IssueDate:  formatDate(issueDate),
		ExpiryDate: formatDate(issueDate.AddDate(10, 0, 0)),
	}, nil
}

func (m *Module) drawOMS(birthDate time.Time, ctx *engine.Context) (*OMS, error) {
	partial, err := drawDigits(ctx.Random, 15)
	if err != nil {
		return nil, err
	}
	check, err := checksum.LuhnCheckDigit(partial)
	if err != nil {
		return nil, err
	}

	issueDate, err := drawDateBetween(ctx.Now().AddDate(-10, 0, 0), ctx.Now(), ctx.Random)
	if err != nil {
		return nil, err
	}
	if issueDate.Before(birthDate) {
		issueDate = birthDate
	}

	return &OMS{
		Number:    fmt.Sprintf("%s%d", partial, check),
		IssueDate: formatDate(issueDate),
	}, nil
}

// drawDateBetween returns a uniform date in [earliest, latest]; a latest
// before earliest clamps to earliest.
func drawDateBetween(earliest, latest time.Time, src *random.Source) (time.Time, error) {
	if latest.Before(earliest) {
		latest = earliest
	}
	diff := latest.Sub(earliest)
	offset := time.Duration(src.Next() * float64(diff))
	at := earliest.Add(offset)
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC), nil
}

func drawDigits(src *random.Source, length int) (string, error) {
	var out strings.Builder
	for i := 0; i < length; i++ {
		digit, err := src.IntN(0, 10)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&out, "%d", digit)
	}
	return out.String(), nil
}

// lastTwoDigits normalizes a region code to its two trailing digits.
func lastTwoDigits(code string) string {
	if len(code) >= 2 {
		return code[len(code)-2:]
	}
	return strings.Repeat("0", 2-len(code)) + code
}
