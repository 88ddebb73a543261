package connecting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de conexões
var (
	// Erros de validação
	ErrUserIDRequired      = errors.New("user ID is required")
	ErrAccountIDRequired   = errors.New("account ID is required")
	ErrAccessTokenRequired = errors.New("access token is required")
	ErrConnectionNotFound  = errors.New("connection not found")
	ErrAccountNotAllowed   = errors.New("token has no access to the account")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")

	// Erros de cifragem do token
	ErrEncryptToken = errors.New("error encrypting access token")
	ErrDecryptToken = errors.New("error decrypting access token")
)

// ConnectionError é um erro com contexto adicional para conexões
type ConnectionError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	AccountID string // Conta envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *ConnectionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func NewConnectionError(err error, code string, details string) *ConnectionError {
	return &ConnectionError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewConnectionErrorWithAccount(err error, code string, accountID string, details string) *ConnectionError {
	return &ConnectionError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
		Details:   details,
	}
}
