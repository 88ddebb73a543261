package insighting

import (
	"context"
	"errors"
	"fmt"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
)

const (
	KindRateLimit      = apiErrors.KindRateLimit
	KindRequestError   = apiErrors.KindRequestError
	KindTransientError = apiErrors.KindTransientError
)

var (
	ErrAccountIDRequired   = errors.New("account ID is required")
	ErrAccessTokenRequired = errors.New("access token is required")
	ErrParentIDRequired    = errors.New("parent ID is required")
	ErrInvalidOptions      = errors.New("invalid insight options")
)

// PartialDataError não é falha da requisição: as entidades vieram, os insights não
type PartialDataError struct {
	AccountID string
	Err       error
}

func (e *PartialDataError) Error() string {
	return fmt.Sprintf("insights unavailable for %s: %v", e.AccountID, e.Err)
}

func (e *PartialDataError) Unwrap() error {
	return e.Err
}

// ErrorKind classifica qualquer erro na taxonomia exposta ao cliente
func ErrorKind(err error) string {
	var rateLimit *metadomain.RateLimitError
	var request *metadomain.RequestError

	switch {
	case errors.As(err, &rateLimit):
		return KindRateLimit
	case errors.As(err, &request):
		return KindRequestError
	case errors.Is(err, ErrAccountIDRequired), errors.Is(err, ErrAccessTokenRequired),
		errors.Is(err, ErrParentIDRequired), errors.Is(err, ErrInvalidOptions):
		return KindRequestError
	default:
		// timeout, rede, 5xx e o que não foi classificado
		return KindTransientError
	}
}

// DescribeError monta o corpo estruturado { kind, message, retry_after, usage_percent }
func DescribeError(err error) *domain.InsightsError {
	if err == nil {
		return nil
	}

	described := &domain.InsightsError{
		Kind:    ErrorKind(err),
		Message: err.Error(),
	}

	var rateLimit *metadomain.RateLimitError
	if errors.As(err, &rateLimit) {
		described.Message = "rate limited by Meta"
		described.RetryAfter = rateLimit.RetryAfterSeconds()
		described.UsagePercent = rateLimit.UsagePercent
	}

	var request *metadomain.RequestError
	if errors.As(err, &request) {
		described.Message = request.Message
	}

	if errors.Is(err, context.DeadlineExceeded) {
		described.Message = "request to Meta timed out"
	}

	return described
}

// IsTokenInvalid indica que o usuário precisa reconectar a conta
func IsTokenInvalid(err error) bool {
	var request *metadomain.RequestError
	return errors.As(err, &request) && request.TokenInvalid
}
