package apiErrors

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrConnectionNotFound  = "VAL_004" // Conta não conectada pelo usuário
	ErrAccountNotAllowed   = "VAL_005" // Token sem acesso à conta
	ErrRouteNotFound       = "VAL_006" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_007" // Método não suportado pela rota

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Tipos de falha da Meta, expostos no campo kind
const (
	KindRateLimit      = "RATE_LIMIT"
	KindRequestError   = "REQUEST_ERROR"
	KindTransientError = "TRANSIENT_ERROR"
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrConnectionNotFound:    http.StatusNotFound,
	ErrAccountNotAllowed:     http.StatusForbidden,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	writeJSON(w, status, apiErr)
}

// StatusForKind devolve o status HTTP de cada tipo de falha da Meta.
// tokenInvalid só importa para REQUEST_ERROR.
func StatusForKind(kind string, tokenInvalid bool) int {
	switch kind {
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindRequestError:
		if tokenInvalid {
			return http.StatusUnauthorized
		}
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

// WriteInsightsError escreve { kind, message, retry_after, usage_percent }.
// Para RATE_LIMIT também envia o cabeçalho Retry-After.
func WriteInsightsError(w http.ResponseWriter, body *domain.InsightsError, tokenInvalid bool) {
	if body.Kind == KindRateLimit && body.RetryAfter != nil {
		w.Header().Set("Retry-After", strconv.FormatInt(*body.RetryAfter, 10))
	}

	writeJSON(w, StatusForKind(body.Kind, tokenInvalid), body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
