package util

import (
	"errors"
	"strings"
)

var (
	// ErrCPFInvalido indica CPF com formato ou dígitos verificadores inválidos.
	ErrCPFInvalido = errors.New("cpf inválido")
)

// NormalizeCPF remove pontuação e espaços, mantendo apenas dígitos.
func NormalizeCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCPF verifica os dois dígitos verificadores pelo algoritmo módulo-11.
// Sequências com todos os dígitos iguais são sempre rejeitadas.
func ValidateCPF(cpf string) error {
	digits := NormalizeCPF(cpf)
	if len(digits) != 11 {
		return ErrCPFInvalido
	}

	allEqual := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return ErrCPFInvalido
	}

	if cpfCheckDigit(digits, 9) != int(digits[9]-'0') {
		return ErrCPFInvalido
	}
	if cpfCheckDigit(digits, 10) != int(digits[10]-'0') {
		return ErrCPFInvalido
	}
	return nil
}

// cpfCheckDigit calcula o dígito verificador sobre os primeiros n dígitos.
func cpfCheckDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
