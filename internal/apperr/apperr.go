package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifica falhas em categorias estáveis para a camada HTTP.
type Code string

const (
	CodeValidation     Code = "VALIDATION"
	CodeConflict       Code = "CONFLICT"
	CodePolicy         Code = "POLICY"
	CodeNotFound       Code = "NOT_FOUND"
	CodeAuth           Code = "AUTH"
	CodeForbidden      Code = "FORBIDDEN"
	CodeRemote         Code = "REMOTE"
	CodePartialFailure Code = "PARTIAL_FAILURE"
	CodeInternal       Code = "INTERNAL"
)

var statusByCode = map[Code]int{
	CodeValidation:     http.StatusBadRequest,
	CodeConflict:       http.StatusConflict,
	CodePolicy:         http.StatusUnprocessableEntity,
	CodeNotFound:       http.StatusNotFound,
	CodeAuth:           http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeRemote:         http.StatusBadGateway,
	CodePartialFailure: http.StatusOK,
	CodeInternal:       http.StatusInternalServerError,
}

// Error carrega código, mensagem legível e causa opcional.
type Error struct {
	Code    Code
	Message string
	Reason  string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap expõe a causa para errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// New cria um erro classificado.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf cria um erro classificado com formatação.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap embrulha uma causa preservando a classificação.
func Wrap(code Code, cause error, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithReason anexa motivo específico (ex.: AreaTaken, DuplicateVote).
func (e *Error) WithReason(reason string) *Error {
	e.Reason = reason
	return e
}

// CodeOf devolve o código do erro ou INTERNAL para erros não classificados.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// ReasonOf devolve o motivo específico quando presente.
func ReasonOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return ""
}

// HTTPStatus mapeia código para status HTTP.
func HTTPStatus(code Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsCode indica se o erro pertence à categoria informada.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
