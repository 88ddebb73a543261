package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/connecting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

func GetCampaignsWithInsights(service insighting.Insighter, connector connecting.Connector) http.Handler {
	return insightsHandler(connector, "", service.GetCampaignsWithInsights)
}

func GetAdSetsWithInsights(service insighting.Insighter, connector connecting.Connector) http.Handler {
	return insightsHandler(connector, "campaign_id", service.GetAdSetsWithInsights)
}

func GetAdsWithInsights(service insighting.Insighter, connector connecting.Connector) http.Handler {
	return insightsHandler(connector, "adset_id", service.GetAdsWithInsights)
}

func GetAccountSummary(service insighting.Insighter, connector connecting.Connector) http.Handler {
	return insightsHandler(connector, "", service.GetAccountSummary)
}

func GetDailyInsights(service insighting.Insighter, connector connecting.Connector) http.Handler {
	return insightsHandler(connector, "", service.GetDailyInsights)
}

// insightsHandler resolve o token da conexão do usuário, monta a requisição e responde.
// parentParam é o parâmetro de rota do pai (campanha ou adset), vazio quando não há.
func insightsHandler[T any](connector connecting.Connector, parentParam string, fetch func(context.Context, domain.InsightsRequest) (T, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params := httprouter.ParamsFromContext(ctx)
		accountID := domain.NormalizeAccountID(params.ByName("id"))
		logger := log.ForContext(ctx).WithField("account_id", accountID)

		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		request, err := parseInsightsRequest(r)
		if err != nil {
			logger.WithError(err).Warn("insights: invalid query parameters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		token, err := connector.GetAccessToken(ctx, userID, accountID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		request.AccountID = accountID
		request.AccessToken = token
		if parentParam != "" {
			request.ParentID = params.ByName(parentParam)
		}

		response, err := fetch(ctx, request)
		if err != nil {
			logger.WithError(err).WithField("error_kind", insighting.ErrorKind(err)).Warn("insights: request failed")
			writeServiceError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	})
}

// parseInsightsRequest lê date_range, since/until, breakdowns e entity_ids da query
func parseInsightsRequest(r *http.Request) (domain.InsightsRequest, error) {
	query := r.URL.Query()

	request := domain.InsightsRequest{
		Breakdowns:     utils.ParseCSV(query.Get("breakdowns")),
		EntityIDFilter: utils.ParseCSV(query.Get("entity_ids")),
	}

	if value := query.Get("date_range"); value != "" {
		preset, err := domain.ParseDatePreset(value)
		if err != nil {
			return domain.InsightsRequest{}, err
		}
		request.DateRange.Preset = preset
	}

	since, until := query.Get("since"), query.Get("until")
	if since == "" && until == "" {
		return request, nil
	}

	if since == "" || until == "" {
		return domain.InsightsRequest{}, fmt.Errorf("since and until must be informed together")
	}

	sinceDate, err := utils.ParseDate(since)
	if err != nil {
		return domain.InsightsRequest{}, fmt.Errorf("invalid since date %q", since)
	}

	untilDate, err := utils.ParseDate(until)
	if err != nil {
		return domain.InsightsRequest{}, fmt.Errorf("invalid until date %q", until)
	}

	request.DateRange.TimeRange = domain.NewTimeRange(*sinceDate, *untilDate)

	return request, nil
}

type updateStatusResponse struct {
	ID      string              `json:"id"`
	Status  domain.EntityStatus `json:"status"`
	Success bool                `json:"success"`
}

// UpdateEntityStatus pausa ou ativa campanha, conjunto ou anúncio
func UpdateEntityStatus(service insighting.Insighter, connector connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params := httprouter.ParamsFromContext(ctx)
		accountID := domain.NormalizeAccountID(params.ByName("id"))
		entityID := params.ByName("entity_id")

		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var request domain.UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		status, err := domain.ParseWritableStatus(request.Status)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		token, err := connector.GetAccessToken(ctx, userID, accountID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if err := service.UpdateEntityStatus(ctx, token, accountID, entityID, status); err != nil {
			log.ForContext(ctx).WithError(err).WithFields(log.Fields{
				"account_id": accountID,
				"entity_id":  entityID,
				"error_kind": insighting.ErrorKind(err),
			}).Warn("insights: status update failed")
			writeServiceError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, updateStatusResponse{
			ID:      entityID,
			Status:  status,
			Success: true,
		})
	})
}
