package document

import (
	"regexp"
	"strings"
)

type Kind string

const (
	KindIndividual   Kind = "cpf"
	KindOrganization Kind = "cnpj"
)

const (
	individualLength   = 11
	organizationLength = 14
)

var (
	nonDigits = regexp.MustCompile(`\D`)

	individualLayout   = regexp.MustCompile(`^(\d{3})(\d{3})(\d{3})(\d{2})$`)
	organizationLayout = regexp.MustCompile(`^(\d{2})(\d{3})(\d{3})(\d{4})(\d{2})$`)
)

// Label returns the name shown to the user for the document kind.
func (k Kind) Label() string {
	if k == KindOrganization {
		return "CNPJ"
	}

	return "CPF"
}

// Result is the outcome of validating and formatting one input.
type Result struct {
	Valid     bool
	Digits    string
	Formatted string
}

// Validate runs the validator and formatter for kind over input.
// Formatted is only meaningful when Valid is true.
func Validate(kind Kind, input string) Result {
	res := Result{Digits: Digits(input)}

	switch kind {
	case KindOrganization:
		res.Valid = IsValidOrganizationID(input)
		res.Formatted = FormatOrganizationID(input)
	default:
		res.Valid = IsValidIndividualID(input)
		res.Formatted = FormatIndividualID(input)
	}

	return res
}

func Digits(input string) string {
	return nonDigits.ReplaceAllString(input, "")
}

// IsValidIndividualID reports whether input holds a CPF with valid check digits.
// Punctuation is ignored.
func IsValidIndividualID(input string) bool {
	digits := Digits(input)
	if len(digits) != individualLength || allSame(digits) {
		return false
	}

	return individualCheckDigit(digits[:9]) == digitAt(digits, 9) &&
		individualCheckDigit(digits[:10]) == digitAt(digits, 10)
}

// IsValidOrganizationID reports whether input holds a CNPJ with valid check digits.
// Punctuation is ignored.
func IsValidOrganizationID(input string) bool {
	digits := Digits(input)
	if len(digits) != organizationLength || allSame(digits) {
		return false
	}

	// the second pass runs over the first check digit too
	return organizationCheckDigit(digits[:12]) == digitAt(digits, 12) &&
		organizationCheckDigit(digits[:13]) == digitAt(digits, 13)
}

func FormatIndividualID(input string) string {
	return individualLayout.ReplaceAllString(Digits(input), "$1.$2.$3-$4")
}

func FormatOrganizationID(input string) string {
	return organizationLayout.ReplaceAllString(Digits(input), "$1.$2.$3/$4-$5")
}

// individualCheckDigit weights the prefix from len+1 down to 2.
func individualCheckDigit(prefix string) int {
	sum := 0
	weight := len(prefix) + 1
	for i := range len(prefix) {
		sum += digitAt(prefix, i) * weight
		weight--
	}

	rest := (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}

	return rest
}

// organizationCheckDigit weights the prefix right to left with 2..9, wrapping.
func organizationCheckDigit(prefix string) int {
	sum := 0
	pos := 0
	for i := len(prefix) - 1; i >= 0; i-- {
		sum += digitAt(prefix, i) * (pos%8 + 2)
		pos++
	}

	rest := sum % 11
	if rest < 2 {
		return 0
	}

	return 11 - rest
}

func digitAt(digits string, i int) int {
	return int(digits[i] - '0')
}

func allSame(digits string) bool {
	return strings.Count(digits, digits[:1]) == len(digits)
}
