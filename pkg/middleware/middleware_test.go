package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		setup      func(auth *mocks.MockAuthenticator)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Healthcheck é público",
			method:     http.MethodGet,
			path:       "/healthcheck",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Preflight OPTIONS passa sem token",
			method:     http.MethodOptions,
			path:       "/v1/connections",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Sem Authorization",
			method:     http.MethodGet,
			path:       "/v1/connections",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "Authorization sem Bearer",
			method:     http.MethodGet,
			path:       "/v1/connections",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:   "Token expirado mantém o código do erro",
			method: http.MethodGet,
			path:   "/v1/connections",
			header: "Bearer expirado",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ValidateToken("expirado").
					Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:   "Token válido segue com o usuário no contexto",
			method: http.MethodGet,
			path:   "/v1/connections",
			header: "Bearer valido",
			setup: func(auth *mocks.MockAuthenticator) {
				claims := &domain.Claims{}
				claims.Subject = "user-1"
				auth.EXPECT().ValidateToken("valido").Return(claims, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			if tt.setup != nil {
				tt.setup(auth)
			}

			var seenUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if claims, ok := ClaimsFromContext(r.Context()); ok {
					seenUser = claims.UserID()
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(auth)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
			}
			if tt.header == "Bearer valido" {
				assert.Equal(t, "user-1", seenUser)
			}
		})
	}
}

func TestCors(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		origin      string
		method      string
		wantStatus  int
		wantAllowed bool
	}{
		{name: "Origem liberada", allowed: []string{"https://app.loja.com/"}, origin: "https://app.loja.com", method: http.MethodGet, wantStatus: http.StatusOK, wantAllowed: true},
		{name: "Origem desconhecida", allowed: []string{"https://app.loja.com"}, origin: "https://evil.com", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "Curinga libera qualquer origem", allowed: []string{"*"}, origin: "http://localhost:5173", method: http.MethodGet, wantStatus: http.StatusOK, wantAllowed: true},
		{name: "Preflight responde 204", allowed: []string{"*"}, origin: "http://localhost:5173", method: http.MethodOptions, wantStatus: http.StatusNoContent, wantAllowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/accounts/act_1/campaigns", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			Cors(tt.allowed)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantAllowed {
				assert.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Retry-After")
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
	}{
		{name: "Administrador", claims: &domain.Claims{AppMetadata: domain.AppMetadata{Role: domain.RoleAdmin}}, wantStatus: http.StatusOK},
		{name: "Usuário comum", claims: &domain.Claims{AppMetadata: domain.AppMetadata{Role: domain.RoleUser}}, wantStatus: http.StatusForbidden},
		{name: "Sem papel definido vira usuário", claims: &domain.Claims{}, wantStatus: http.StatusForbidden},
		{name: "Sem autenticação", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, tt.claims))
			}
			rec := httptest.NewRecorder()

			AdminOnly()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLoggingMiddleware_CorrelationID(t *testing.T) {
	t.Run("Gera um ID quando o cliente não envia", func(t *testing.T) {
		rec := httptest.NewRecorder()
		LoggingMiddleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Len(t, rec.Header().Get(CorrelationIDHeader), 36)
	})

	t.Run("Reaproveita um UUID válido recebido", func(t *testing.T) {
		incoming := "0b8f6c1e-6f0e-4f55-9a43-0c7a8f3f2d11"
		req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		req.Header.Set(CorrelationIDHeader, incoming)
		rec := httptest.NewRecorder()

		LoggingMiddleware()(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, incoming, rec.Header().Get(CorrelationIDHeader))
	})

	t.Run("Descarta valor recebido que não é UUID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		req.Header.Set(CorrelationIDHeader, "abc")
		rec := httptest.NewRecorder()

		LoggingMiddleware()(okHandler()).ServeHTTP(rec, req)

		assert.NotEqual(t, "abc", rec.Header().Get(CorrelationIDHeader))
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map")
	})
	rec := httptest.NewRecorder()

	LogPanicMiddleware()(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/connections", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, decodeAPIError(t, rec).Code)

	t.Run("deve devolver o correlation id nos detalhes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/connections", nil)
		req.Header.Set(CorrelationIDHeader, "6f1c1f7e-3f5a-4e55-9d7f-2b8f0f6a9c11")

		LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]any{"correlation_id": "6f1c1f7e-3f5a-4e55-9d7f-2b8f0f6a9c11"}, decodeAPIError(t, rec).Details)
	})
}

func TestLoggingResponseWriter_KeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	lrw := newLoggingResponseWriter(rec)

	lrw.WriteHeader(http.StatusTooManyRequests)
	lrw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusTooManyRequests, lrw.statusCode)
}
