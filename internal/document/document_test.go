package document_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gratefultolord/intake_bot/internal/document"
)

var (
	validCPFs  = []string{"111.444.777-35", "52998224725", "123.456.789-09", "000.000.001-91"}
	validCNPJs = []string{"11.222.333/0001-81", "19100000000191", "33.592.190/0001-32", "00.000.000/0001-91"}

	cpfPattern  = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
)

func TestIsValidIndividualID(t *testing.T) {
	for _, in := range validCPFs {
		assert.True(t, document.IsValidIndividualID(in), in)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"wrong first check digit", "111.444.777-45"},
		{"wrong second check digit", "111.444.777-36"},
		{"too short", "111.444.777-3"},
		{"too long", "111.444.777-350"},
		{"empty", ""},
		{"letters only", "abc.def.ghi-jk"},
		{"cnpj digits", "11.222.333/0001-81"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, document.IsValidIndividualID(tt.input))
		})
	}
}

func TestIsValidIndividualID_RepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		in := strings.Repeat(string(d), 11)
		assert.False(t, document.IsValidIndividualID(in), in)
	}

	assert.False(t, document.IsValidIndividualID("111.111.111-11"))
}

func TestIsValidIndividualID_Length(t *testing.T) {
	for n := 0; n <= 20; n++ {
		if n == 11 {
			continue
		}
		in := strings.Repeat("12345678909", 2)[:n]
		assert.False(t, document.IsValidIndividualID(in), "length %d", n)
	}
}

func TestIsValidOrganizationID(t *testing.T) {
	for _, in := range validCNPJs {
		assert.True(t, document.IsValidOrganizationID(in), in)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"wrong first check digit", "11.222.333/0001-91"},
		{"wrong second check digit", "11.222.333/0001-82"},
		{"weights applied left to right", "11.222.333/0001-90"},
		{"too short", "11.222.333/0001-8"},
		{"too long", "11.222.333/0001-810"},
		{"empty", ""},
		{"cpf digits", "111.444.777-35"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, document.IsValidOrganizationID(tt.input))
		})
	}
}

func TestIsValidOrganizationID_RepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		in := strings.Repeat(string(d), 14)
		assert.False(t, document.IsValidOrganizationID(in), in)
	}
}

func TestIsValidOrganizationID_Length(t *testing.T) {
	for n := 0; n <= 20; n++ {
		if n == 14 {
			continue
		}
		in := strings.Repeat("11222333000181", 2)[:n]
		assert.False(t, document.IsValidOrganizationID(in), "length %d", n)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, in := range validCPFs {
		out := document.FormatIndividualID(in)
		assert.Regexp(t, cpfPattern, out)
		assert.Equal(t, document.Digits(in), document.Digits(out))
	}

	for _, in := range validCNPJs {
		out := document.FormatOrganizationID(in)
		assert.Regexp(t, cnpjPattern, out)
		assert.Equal(t, document.Digits(in), document.Digits(out))
	}
}

func TestFormat_Malformed(t *testing.T) {
	assert.Equal(t, "1234", document.FormatIndividualID("12-34"))
	assert.Equal(t, "123456", document.FormatOrganizationID("12.34.56"))
}

func TestValidate(t *testing.T) {
	res := document.Validate(document.KindIndividual, " 111.444.777-35 ")
	require.True(t, res.Valid)
	assert.Equal(t, "11144477735", res.Digits)
	assert.Equal(t, "111.444.777-35", res.Formatted)

	res = document.Validate(document.KindOrganization, "11222333000181")
	require.True(t, res.Valid)
	assert.Equal(t, "11222333000181", res.Digits)
	assert.Equal(t, "11.222.333/0001-81", res.Formatted)

	res = document.Validate(document.KindIndividual, "111.111.111-11")
	assert.False(t, res.Valid)
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "CPF", document.KindIndividual.Label())
	assert.Equal(t, "CNPJ", document.KindOrganization.Label())
}
