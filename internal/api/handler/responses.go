package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/connecting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: failed to encode response")
	}
}

// writeServiceError traduz os erros dos casos de uso para o envelope HTTP.
// Falhas da Meta usam { kind, ... }; o resto usa { code, message }.
func writeServiceError(w http.ResponseWriter, err error) {
	var connErr *connecting.ConnectionError
	if errors.As(err, &connErr) {
		apiErrors.WriteError(w, connErr.Code, connErr.Details, nil)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, insighting.ErrAccountIDRequired),
		errors.Is(err, insighting.ErrAccessTokenRequired),
		errors.Is(err, insighting.ErrParentIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
		return
	case errors.Is(err, insighting.ErrInvalidOptions):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return
	}

	apiErrors.WriteInsightsError(w, insighting.DescribeError(err), insighting.IsTokenInvalid(err))
}

// currentUserID lê o usuário autenticado; o AuthMiddleware garante a presença
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.UserID() == "" {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return "", false
	}
	return claims.UserID(), true
}
