package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/connecting"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
)

type connectionsResponse struct {
	Connections []*domain.Connection `json:"connections"`
}

// CreateConnection valida o token na Meta e salva a conexão com a conta
func CreateConnection(connector connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var request domain.CreateConnectionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		connection, err := connector.Create(r.Context(), userID, &request)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, connection)
	})
}

func ListConnections(connector connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		connections, err := connector.List(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, connectionsResponse{Connections: connections})
	})
}

func DeleteConnection(connector connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("account_id")
		if err := connector.Delete(r.Context(), userID, accountID); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
