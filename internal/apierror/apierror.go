// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// Messages shared by handlers and middleware.
const (
	MsgNenhumResultado   = "Nenhum resultado encontrado."
	MsgErroInterno       = "Erro interno do servidor."
	MsgMuitasRequisicoes = "Muitas requisições. Tente novamente em instantes."
)

// APIError is the envelope for 404/429/5xx responses.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// ValidationError maps each offending query parameter to its messages.
type ValidationError struct {
	Error map[string][]string `json:"error"`
}

func NewValidation(fields map[string][]string) *ValidationError {
	return &ValidationError{Error: fields}
}
