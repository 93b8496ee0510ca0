package identity

import (
	"fmt"
	"strings"

	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/random"
	"github.com/syntorio/synthid/internal/errors"
)

var emailDomains = []string{"mail.ru", "yandex.ru", "gmail.com", "outlook.com"}

// phonePrefixes are mobile-operator prefixes of the +7 numbering plan,
// weighted towards the larger operators.
var phonePrefixes = []dictionary.WeightedString{
	{Value: "900", Weight: 8},
	{Value: "901", Weight: 5},
	{Value: "902", Weight: 6},
	{Value: "903", Weight: 10},
	{Value: "904", Weight: 6},
	{Value: "905", Weight: 9},
	{Value: "906", Weight: 7},
	{Value: "909", Weight: 4},
}

// translitMap converts Cyrillic letters to their Latin email-safe form.
var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

func drawContacts(firstName, lastName string, format PhoneFormat, src *random.Source) (Contacts, error) {
	prefix, err := random.Weighted(src, phonePrefixes)
	if err != nil {
		return Contacts{}, errors.Wrap(err, "draw phone prefix")
	}

	var subscriber strings.Builder
	for i := 0; i < 7; i++ {
		digit, err := src.IntN(0, 10)
		if err != nil {
			return Contacts{}, err
		}
		fmt.Fprintf(&subscriber, "%d", digit)
	}
	digits := prefix.Value + subscriber.String()

	e164 := "+7" + digits
	formatted := e164
	if format == PhoneNational {
		formatted = fmt.Sprintf("8 (%s) %s-%s-%s", digits[0:3], digits[3:6], digits[6:8], digits[8:10])
	}

	localPart := transliterate(firstInitial(firstName)) + "." + transliterate(lastName)
	localPart = sanitizeLocalPart(localPart)
	domain, err := random.Pick(src, emailDomains)
	if err != nil {
		return Contacts{}, errors.Wrap(err, "draw email domain")
	}

	return Contacts{
		Phone: Phone{E164: e164, Formatted: formatted},
		Email: localPart + "@" + domain,
	}, nil
}

func firstInitial(name string) string {
	for _, r := range name {
		return string(r)
	}
	return ""
}

// transliterate maps Cyrillic runes to Latin and lowercases the result.
// Runes without a mapping pass through if already email-safe.
func transliterate(input string) string {
	var out strings.Builder
	for _, r := range strings.ToLower(input) {
		if mapped, ok := translitMap[r]; ok {
			out.WriteString(mapped)
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// sanitizeLocalPart strips anything outside [a-z0-9.].
func sanitizeLocalPart(input string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			return r
		default:
			return -1
		}
	}, input)
}
