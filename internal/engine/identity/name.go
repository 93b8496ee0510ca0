package identity

import (
	"fmt"
	"time"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/random"
	"github.com/syntorio/synthid/internal/errors"
)

func resolveGender(requested Gender, src *random.Source) (Gender, error) {
	switch requested {
	case GenderMale, GenderFemale:
		return requested, nil
	case "", GenderRandom:
		if src.Next() < 0.5 {
			return GenderMale, nil
		}
		return GenderFemale, nil
	default:
		return "", errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("unknown gender %q", requested))
	}
}

// patronymicFrom derives a patronymic from a male given name. Names ending
// in a soft sign, й or a soft vowel take the -евич/-евна suffix, the rest
// take -ович/-овна; a trailing й, ь, а or я is dropped from the stem.
func patronymicFrom(fatherName string, gender Gender) string {
	runes := []rune(fatherName)
	if len(runes) == 0 {
		return ""
	}
	last := runes[len(runes)-1]
	stem := runes
	switch last {
	case 'й', 'ь', 'а', 'я':
		stem = runes[:len(runes)-1]
	}
	soft := false
	switch last {
	case 'й', 'ь', 'ё', 'е', 'и', 'ю':
		soft = true
	}
	var suffix string
	switch {
	case soft && gender == GenderMale:
		suffix = "евич"
	case soft:
		suffix = "евна"
	case gender == GenderMale:
		suffix = "ович"
	default:
		suffix = "овна"
	}
	return string(stem) + suffix
}

type personalDraw struct {
	firstName  string
	lastName   string
	middleName string
	age        int
	birthDate  time.Time
}

func drawPersonal(gender Gender, ageRange engine.Range, ctx *engine.Context) (personalDraw, error) {
	var draw personalDraw

	names, err := ctx.Dictionaries.Names()
	if err != nil {
		return draw, err
	}

	pool := names.Male
	if gender == GenderFemale {
		pool = names.Female
	}
	first, err := random.Weighted(ctx.Random, pool)
	if err != nil {
		return draw, errors.Wrap(err, "draw first name")
	}
	draw.firstName = first.Value

	surname, err := random.Weighted(ctx.Random, names.Surnames)
	if err != nil {
		return draw, errors.Wrap(err, "draw surname")
	}
	draw.lastName = surname.Value

	// The patronymic comes from an independently drawn male name.
	father, err := random.Weighted(ctx.Random, names.Male)
	if err != nil {
		return draw, errors.Wrap(err, "draw father name")
	}
	draw.middleName = patronymicFrom(father.Value, gender)

	if err := ageRange.Validate(); err != nil {
		return draw, err
	}
	age, err := ageRange.Draw(ctx.Random)
	if err != nil {
		return draw, err
	}
	draw.age = age

	now := ctx.Now()
	year := now.Year() - age
	month, err := ctx.Random.IntN(1, 13)
	if err != nil {
		return draw, err
	}
	day, err := ctx.Random.IntN(1, daysInMonth(year, time.Month(month))+1)
	if err != nil {
		return draw, err
	}
	draw.birthDate = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	return draw, nil
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
