package handler

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
)

type fakeCronJob struct {
	triggered atomic.Int32
	status    map[string]any
}

func (f *fakeCronJob) TriggerManualSync() {
	f.triggered.Add(1)
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return f.status
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		wantStatus    int
		wantTriggered int32
		wantCode      string
	}{
		{
			name:          "deve disparar a limpeza do cache",
			target:        "/v1/cron/run/cache-sweep",
			wantStatus:    http.StatusAccepted,
			wantTriggered: 1,
		},
		{
			name:          "deve disparar todas as jobs",
			target:        "/v1/cron/run/all",
			wantStatus:    http.StatusAccepted,
			wantTriggered: 1,
		},
		{
			name:       "deve rejeitar tipo desconhecido",
			target:     "/v1/cron/run/account-sync",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeCronJob{}
			// sem o AdminOnly, que tem seus próprios testes
			rt := router.New(router.WithRoutes(router.Route{
				Path:    "/v1/cron/run/:type",
				Method:  http.MethodPost,
				Handler: RunCronJob(CronJobServices{CronJobTypeCacheSweep: job}),
			}))

			rec := serve(rt, http.MethodPost, tt.target, "")

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantTriggered, job.triggered.Load())

			if tt.wantCode != "" {
				var body apiErrors.APIError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Code)
				assert.Contains(t, body.Message, "cache-sweep, all")
			}
		})
	}
}

func TestCronRoutesRequireAdmin(t *testing.T) {
	job := &fakeCronJob{}
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CronJobTypeCacheSweep: job})...))

	rec := serve(withUser(testUserID, rt), http.MethodPost, "/v1/cron/run/cache-sweep", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, job.triggered.Load())
}

func TestGetCronStatus(t *testing.T) {
	job := &fakeCronJob{status: map[string]any{"enabled": true, "total_removed": 3}}
	handler := GetCronStatus(CronJobServices{CronJobTypeCacheSweep: job})

	rec := serve(handler, http.MethodGet, "/v1/cron/status", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body[CronJobTypeCacheSweep]["enabled"])
	assert.EqualValues(t, 3, body[CronJobTypeCacheSweep]["total_removed"])
}

func TestHealthcheckHandler(t *testing.T) {
	tests := []struct {
		name         string
		db           Pinger
		wantStatus   int
		wantHealth   string
		wantDatabase string
	}{
		{
			name:         "deve responder ok com o banco disponível",
			db:           fakePinger{},
			wantStatus:   http.StatusOK,
			wantHealth:   "ok",
			wantDatabase: "ok",
		},
		{
			name:         "deve responder degraded sem o banco",
			db:           fakePinger{err: errors.New("dial tcp: connection refused")},
			wantStatus:   http.StatusServiceUnavailable,
			wantHealth:   "degraded",
			wantDatabase: "unavailable",
		},
		{
			name:         "deve responder ok sem banco configurado",
			wantStatus:   http.StatusOK,
			wantHealth:   "ok",
			wantDatabase: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(HealthcheckHandler(tt.db), http.MethodGet, "/healthcheck", "")

			require.Equal(t, tt.wantStatus, rec.Code)

			var body healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantHealth, body.Status)
			assert.Equal(t, tt.wantDatabase, body.Database)
			assert.NotEmpty(t, body.Time)
		})
	}
}

func TestRouterJSONErrors(t *testing.T) {
	rt := router.New(
		router.WithJSONErrors(),
		router.WithRoutes(Healthcheck(fakePinger{})...),
	)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "deve responder 404 no envelope da API",
			method:     http.MethodGet,
			target:     "/v1/inexistente",
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrRouteNotFound,
		},
		{
			name:       "deve responder 405 no envelope da API",
			method:     http.MethodPost,
			target:     "/healthcheck",
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   apiErrors.ErrMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(rt, tt.method, tt.target, "")

			require.Equal(t, tt.wantStatus, rec.Code)

			var body apiErrors.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
