package metadomain

import (
	"fmt"
	"strings"
	"time"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	Code           int        `json:"code"`
	ErrorSubcode   int        `json:"error_subcode,omitempty"`
	ErrorUserTitle string     `json:"error_user_title,omitempty"`
	ErrorUserMsg   string     `json:"error_user_msg,omitempty"`
	IsTransient    bool       `json:"is_transient,omitempty"`
	FBTraceID      string     `json:"fbtrace_id"`
	ErrorData      *ErrorData `json:"error_data,omitempty"`
}

// ErrorData aparece em alguns erros de limite com a estimativa de liberação
type ErrorData struct {
	EstimatedTimeToRegainAccess int `json:"estimated_time_to_regain_access,omitempty"` // minutos
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// Códigos de erro da Graph API que indicam limite de requisições
var rateLimitCodes = map[int]bool{
	4:   true, // application request limit
	17:  true, // user request limit
	32:  true, // page request limit
	613: true, // calls within one hour exceeded
}

var rateLimitSubcodes = map[int]bool{
	2446079: true, // ads management api throttling
	1487742: true, // too many calls to ad account
}

// IsRateLimit verifica código, subcódigo e mensagem do erro
func (e *ErrorResponse) IsRateLimit() bool {
	code := e.Error.Code
	if rateLimitCodes[code] || rateLimitSubcodes[e.Error.ErrorSubcode] {
		return true
	}

	// 80000-80014: limites da Marketing API por caso de uso de negócio
	if code >= 80000 && code <= 80014 {
		return true
	}

	msg := strings.ToLower(e.Error.Message)
	return strings.Contains(msg, "request limit") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many calls")
}

// RateLimitError sinaliza cota esgotada na Meta. Não deve ser repetido imediatamente.
type RateLimitError struct {
	Message      string
	Code         int
	Subcode      int
	StatusCode   int
	RetryAfter   *time.Duration
	UsagePercent *float64
}

func (e *RateLimitError) Error() string {
	if e == nil {
		return ""
	}

	msg := fmt.Sprintf("meta rate limit (status=%d code=%d subcode=%d)", e.StatusCode, e.Code, e.Subcode)
	if e.RetryAfter != nil {
		msg += fmt.Sprintf(" retry after %s", e.RetryAfter.String())
	}
	if e.UsagePercent != nil {
		msg += fmt.Sprintf(" usage %.0f%%", *e.UsagePercent)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

// RetryAfterSeconds arredonda para cima
func (e *RateLimitError) RetryAfterSeconds() *int64 {
	if e == nil || e.RetryAfter == nil {
		return nil
	}

	seconds := int64((*e.RetryAfter + time.Second - 1) / time.Second)
	return &seconds
}

// TransientError cobre falhas de rede, timeout e 5xx. Pode ser repetido com backoff.
type TransientError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *TransientError) Error() string {
	if e == nil {
		return ""
	}

	if e.StatusCode > 0 {
		return fmt.Sprintf("meta transient error (status=%d): %s", e.StatusCode, e.Message)
	}

	return "meta transient error: " + e.Message
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// RequestError é um 4xx que não é limite: token inválido, parâmetro errado
type RequestError struct {
	Message      string
	Type         string
	Code         int
	Subcode      int
	StatusCode   int
	FBTraceID    string
	TokenInvalid bool
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf(
		"meta request error type=%s status=%d code=%d subcode=%d fbtrace_id=%s: %s",
		e.Type,
		e.StatusCode,
		e.Code,
		e.Subcode,
		e.FBTraceID,
		e.Message,
	)
}

// NewRequestError converte o payload de erro da Meta
func NewRequestError(statusCode int, payload *ErrorResponse) *RequestError {
	message := payload.Error.Message
	if payload.Error.ErrorUserMsg != "" {
		message = payload.Error.ErrorUserMsg
	}

	return &RequestError{
		Message:      message,
		Type:         payload.Error.Type,
		Code:         payload.Error.Code,
		Subcode:      payload.Error.ErrorSubcode,
		StatusCode:   statusCode,
		FBTraceID:    payload.Error.FBTraceID,
		TokenInvalid: payload.IsTokenExpired(),
	}
}
