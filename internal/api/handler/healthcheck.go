package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger é a dependência checada pelo healthcheck (o banco)
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{
			Status:   "ok",
			Database: "ok",
			Time:     time.Now().UTC().Format(time.RFC3339),
		}
		status := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("healthcheck: database unavailable")
				response.Status = "degraded"
				response.Database = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, r, status, response)
	})
}
