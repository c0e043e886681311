package dialog

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// answer lists what counts as one reply to a question: a bare option code
// or any of the words appearing in the message.
type answer struct {
	codes []string
	words []string
}

var (
	answerNotCustomer = answer{
		codes: []string{"2"},
		words: []string{"nao", "no"},
	}
	answerCustomer = answer{
		codes: []string{"1"},
		words: []string{"sim", "yes", "cliente", "customer"},
	}
	answerIndividual = answer{
		codes: []string{"1"},
		words: []string{"fisica", "individual", "pf", "cpf"},
	}
	answerOrganization = answer{
		codes: []string{"2"},
		words: []string{"juridica", "organization", "empresa", "pj", "cnpj"},
	}
)

func (a answer) matches(text string) bool {
	if slices.Contains(a.codes, optionCode(text)) {
		return true
	}

	for _, tok := range tokenize(text) {
		if slices.Contains(a.words, tok) {
			return true
		}
	}

	return false
}

// NormalizeText trims, lowercases and strips accents so "Não" and "nao" compare equal.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ToLower(text)

	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		return text
	}

	return folded
}

// tokenize splits normalized text into words, dropping punctuation and emoji.
func tokenize(text string) []string {
	return strings.FieldsFunc(NormalizeText(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// keycapMarks are the invisible parts of keycap emoji such as "5️⃣".
var keycapMarks = strings.NewReplacer("\uFE0F", "", "\u20E3", "")

// optionCode returns the message as a menu option key: surrounding spaces and
// keycap marks removed, nothing else touched. "-1" or "6!" stay as they are
// and match no option.
func optionCode(text string) string {
	return strings.TrimSpace(keycapMarks.Replace(text))
}
