package util

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCPF gera um CPF válido a partir dos 9 primeiros dígitos.
func buildCPF(base string) string {
	if len(base) != 9 {
		panic("base deve ter 9 dígitos")
	}
	d1 := cpfCheckDigit(base+"00", 9)
	d2 := cpfCheckDigit(base+strconv.Itoa(d1)+"0", 10)
	return base + strconv.Itoa(d1) + strconv.Itoa(d2)
}

func TestValidateCPF(t *testing.T) {
	valid := []string{
		buildCPF("123456789"),
		buildCPF("529982247"),
		buildCPF("000000019"),
		"529.982.247-25",
	}
	for _, cpf := range valid {
		assert.NoError(t, ValidateCPF(cpf), cpf)
	}

	invalid := []string{
		"",
		"123",
		"5299822472",    // 10 dígitos
		"529982247250",  // 12 dígitos
		"52998224724",   // primeiro dígito verificador errado
		"52998224726",   // segundo dígito verificador errado
		"abc.def.ghi-jk",
	}
	for _, cpf := range invalid {
		assert.ErrorIs(t, ValidateCPF(cpf), ErrCPFInvalido, cpf)
	}
}

func TestValidateCPFRejectsRepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		cpf := ""
		for i := 0; i < 11; i++ {
			cpf += string(d)
		}
		assert.ErrorIs(t, ValidateCPF(cpf), ErrCPFInvalido, cpf)
	}
}

func TestNormalizeCPF(t *testing.T) {
	require.Equal(t, "52998224725", NormalizeCPF("529.982.247-25"))
	require.Equal(t, "52998224725", NormalizeCPF(" 529 982 247 25 "))
}
