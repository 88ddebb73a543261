package handler

import (
	"net/http"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/connecting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

type metaAccountsResponse struct {
	Accounts []domain.AdAccount `json:"accounts"`
}

// ListMetaAccounts alimenta o seletor de contas com o token da conexão mais recente
func ListMetaAccounts(service insighting.Insighter, connector connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		token, err := connector.GetLatestAccessToken(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		accounts, err := service.ListAdAccounts(r.Context(), token)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("user_id", userID).Warn("meta: failed to list accounts")
			writeServiceError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, metaAccountsResponse{Accounts: accounts})
	})
}
