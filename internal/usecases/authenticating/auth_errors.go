package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken = errors.New("token ausente")
	ErrInvalidToken = errors.New("token inválido")
	ErrExpiredToken = errors.New("token expirado")
)

// AuthError leva o código da API junto do motivo da rejeição do JWT
type AuthError struct {
	Err     error
	Code    string
	Details string
}

func (e *AuthError) Error() string {
	if e.Details == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Details)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthorizationError indica que a requisição deve ser recusada com 401
func IsAuthorizationError(err error) bool {
	for _, target := range []error{ErrMissingToken, ErrInvalidToken, ErrExpiredToken} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{Err: baseErr, Code: code, Details: details}
}
