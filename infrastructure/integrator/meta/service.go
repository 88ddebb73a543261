package meta

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// escopo mínimo para ler campanhas e insights
const requiredScope = "ads_read"

// MetaIntegrator é a fachada tipada sobre os endpoints de entidades e insights
type MetaIntegrator struct {
	Client metaclient.Client
	Now    func() time.Time
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
		Now:    time.Now,
	}
}

func (s *MetaIntegrator) ListAdAccounts(ctx context.Context, token string) ([]domain.AdAccount, error) {
	accounts, err := s.Client.GetAdAccounts(ctx, token)
	if err != nil {
		logrus.WithError(err).Error("meta: failed to list ad accounts")
		return nil, err
	}

	result := make([]domain.AdAccount, 0, len(accounts))
	for _, account := range accounts {
		adAccount := domain.AdAccount{
			ID:            domain.NormalizeAccountID(account.ID),
			AccountID:     domain.StripAccountPrefix(account.AccountID),
			Name:          account.Name,
			AccountStatus: account.AccountStatus,
			Currency:      account.Currency,
			TimezoneName:  account.TimezoneName,
		}
		if account.Business != nil {
			adAccount.BusinessID = account.Business.ID
			adAccount.BusinessName = account.Business.Name
		}
		result = append(result, adAccount)
	}

	logrus.WithField("total_accounts", len(result)).Debug("meta: ad accounts listed")

	return result, nil
}

func (s *MetaIntegrator) ListCampaigns(ctx context.Context, token, accountID string) ([]domain.AdEntity, error) {
	accountID = domain.NormalizeAccountID(accountID)

	campaigns, err := s.Client.GetCampaignsByAccountID(ctx, token, accountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("meta: failed to list campaigns")
		return nil, err
	}

	entities := make([]domain.AdEntity, 0, len(campaigns))
	for _, c := range campaigns {
		entities = append(entities, domain.AdEntity{
			ID:              c.ID,
			Name:            c.Name,
			Level:           domain.LevelCampaign,
			Status:          domain.EntityStatus(c.Status),
			EffectiveStatus: domain.EntityStatus(c.EffectiveStatus),
			CampaignID:      c.ID,
			Objective:       c.Objective,
			DailyBudget:     c.DailyBudget,
			LifetimeBudget:  c.LifetimeBudget,
		})
	}

	return entities, nil
}

func (s *MetaIntegrator) ListAdSets(ctx context.Context, token, campaignID string) ([]domain.AdEntity, error) {
	adSets, err := s.Client.GetAdSetsByCampaignID(ctx, token, campaignID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Error("meta: failed to list ad sets")
		return nil, err
	}

	entities := make([]domain.AdEntity, 0, len(adSets))
	for _, a := range adSets {
		parentID := a.CampaignID
		if parentID == "" {
			parentID = campaignID
		}

		entities = append(entities, domain.AdEntity{
			ID:              a.ID,
			Name:            a.Name,
			Level:           domain.LevelAdSet,
			Status:          domain.EntityStatus(a.Status),
			EffectiveStatus: domain.EntityStatus(a.EffectiveStatus),
			ParentID:        parentID,
			CampaignID:      parentID,
			DailyBudget:     a.DailyBudget,
			LifetimeBudget:  a.LifetimeBudget,
		})
	}

	return entities, nil
}

func (s *MetaIntegrator) ListAds(ctx context.Context, token, adSetID string) ([]domain.AdEntity, error) {
	ads, err := s.Client.GetAdsByAdSetID(ctx, token, adSetID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"adset_id": adSetID,
			"error":    err.Error(),
		}).Error("meta: failed to list ads")
		return nil, err
	}

	entities := make([]domain.AdEntity, 0, len(ads))
	for _, a := range ads {
		parentID := a.AdSetID
		if parentID == "" {
			parentID = adSetID
		}

		entities = append(entities, domain.AdEntity{
			ID:              a.ID,
			Name:            a.Name,
			Level:           domain.LevelAd,
			Status:          domain.EntityStatus(a.Status),
			EffectiveStatus: domain.EntityStatus(a.EffectiveStatus),
			ParentID:        parentID,
			CampaignID:      a.CampaignID,
		})
	}

	return entities, nil
}

// GetInsights normaliza a conta e monta os parâmetros antes de chamar a Graph API
func (s *MetaIntegrator) GetInsights(ctx context.Context, token, accountID string, options domain.InsightOptions) ([]domain.InsightRow, error) {
	accountID = domain.NormalizeAccountID(accountID)

	params, err := BuildInsightParams(options, s.Now())
	if err != nil {
		return nil, err
	}

	insights, err := s.Client.GetInsights(ctx, token, accountID, params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"level":      options.Level,
			"error":      err.Error(),
		}).Error("meta: failed to get insights")
		return nil, err
	}

	rows := make([]domain.InsightRow, 0, len(insights))
	for i := range insights {
		rows = append(rows, FactoryInsightRow(&insights[i]))
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"level":      options.Level,
		"rows":       len(rows),
	}).Debug("meta: insights retrieved")

	return rows, nil
}

func (s *MetaIntegrator) UpdateStatus(ctx context.Context, token, entityID string, status domain.EntityStatus) error {
	if err := s.Client.UpdateStatus(ctx, token, entityID, status); err != nil {
		logrus.WithFields(logrus.Fields{
			"entity_id": entityID,
			"status":    status,
			"error":     err.Error(),
		}).Error("meta: failed to update status")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"entity_id": entityID,
		"status":    status,
	}).Info("meta: status updated")

	return nil
}

// ValidateToken falha com RequestError{TokenInvalid} para tokens expirados ou sem ads_read
func (s *MetaIntegrator) ValidateToken(ctx context.Context, token string) error {
	info, err := s.Client.DebugToken(ctx, token)
	if err != nil {
		return err
	}

	if !info.IsValid {
		return &metadomain.RequestError{Message: "access token is invalid or expired", Code: 190, TokenInvalid: true}
	}

	if info.ExpiresAt > 0 && time.Unix(info.ExpiresAt, 0).Before(s.Now()) {
		return &metadomain.RequestError{Message: "access token is expired", Code: 190, TokenInvalid: true}
	}

	if !info.HasScope(requiredScope) {
		return &metadomain.RequestError{Message: fmt.Sprintf("access token is missing the %s permission", requiredScope), Code: 200}
	}

	return nil
}

type insightFilter struct {
	Field    string   `json:"field"`
	Operator string   `json:"operator"`
	Value    []string `json:"value"`
}

// BuildInsightParams traduz as opções para a query do /insights
func BuildInsightParams(options domain.InsightOptions, today time.Time) (url.Values, error) {
	level := options.Level
	if level == "" {
		level = domain.LevelCampaign
	}

	dateRange, err := options.DateRange.Resolve(today)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("fields", metadomain.InsightFields)
	params.Set("level", string(level))

	if dateRange.TimeRange != nil {
		timeRange, err := json.Marshal(dateRange.TimeRange)
		if err != nil {
			return nil, err
		}
		params.Set("time_range", string(timeRange))
	} else {
		params.Set("date_preset", string(dateRange.Preset))
	}

	if len(options.Breakdowns) > 0 {
		breakdowns := slices.Clone(options.Breakdowns)
		slices.Sort(breakdowns)
		params.Set("breakdowns", strings.Join(slices.Compact(breakdowns), ","))
	}

	if options.TimeIncrement > 0 {
		params.Set("time_increment", strconv.Itoa(options.TimeIncrement))
	}

	filters := make([]insightFilter, 0, 2)
	if len(options.EntityIDFilter) > 0 && level != domain.LevelAccount {
		filters = append(filters, insightFilter{
			Field:    string(level) + ".id",
			Operator: "IN",
			Value:    options.EntityIDFilter,
		})
	}
	if parent := level.ParentLevel(); parent != "" && options.ParentID != "" {
		filters = append(filters, insightFilter{
			Field:    string(parent) + ".id",
			Operator: "IN",
			Value:    []string{options.ParentID},
		})
	}
	if len(filters) > 0 {
		filtering, err := json.Marshal(filters)
		if err != nil {
			return nil, err
		}
		params.Set("filtering", string(filtering))
	}

	return params, nil
}

// FactoryInsightRow converte os campos string da Meta; valores inválidos viram zero
func FactoryInsightRow(insight *metadomain.Insight) domain.InsightRow {
	fields := logrus.Fields{
		"account_id":  insight.AccountID,
		"campaign_id": insight.CampaignID,
		"adset_id":    insight.AdSetID,
		"ad_id":       insight.AdID,
	}

	return domain.InsightRow{
		AccountID:    insight.AccountID,
		CampaignID:   insight.CampaignID,
		AdSetID:      insight.AdSetID,
		AdID:         insight.AdID,
		DateStart:    insight.DateStart,
		DateStop:     insight.DateStop,
		Breakdowns:   insight.BreakdownValues(),
		Spend:        parseDecimal("spend", insight.Spend, fields),
		Impressions:  parseInt("impressions", insight.Impressions, fields),
		Clicks:       parseInt("clicks", insight.Clicks, fields),
		Reach:        parseInt("reach", insight.Reach, fields),
		Frequency:    parseFloat("frequency", insight.Frequency, fields),
		CPM:          parseFloat("cpm", insight.CPM, fields),
		CPC:          parseFloat("cpc", insight.CPC, fields),
		CTR:          parseFloat("ctr", insight.CTR, fields),
		Actions:      factoryActions(insight.Actions, fields),
		ActionValues: factoryActions(insight.ActionValues, fields),
	}
}

func factoryActions(actions []metadomain.Action, fields logrus.Fields) []domain.Action {
	if len(actions) == 0 {
		return nil
	}

	result := make([]domain.Action, 0, len(actions))
	for _, action := range actions {
		value, err := decimal.NewFromString(action.Value)
		if err != nil {
			logrus.WithFields(fields).WithFields(logrus.Fields{
				"action_type":  action.ActionType,
				"action_value": action.Value,
				"error":        err.Error(),
			}).Warn("insights: error converting action value to decimal")
			continue
		}

		result = append(result, domain.Action{ActionType: action.ActionType, Value: value})
	}

	return result
}

func parseDecimal(name, value string, fields logrus.Fields) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		logrus.WithFields(fields).WithFields(logrus.Fields{
			name + "_value": value,
			"error":         err.Error(),
		}).Warnf("insights: error converting %s to decimal", name)
		return decimal.Zero
	}

	return d
}

func parseInt(name, value string, fields logrus.Fields) int64 {
	if value == "" {
		return 0
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithFields(fields).WithFields(logrus.Fields{
			name + "_value": value,
			"error":         err.Error(),
		}).Warnf("insights: error converting %s to integer", name)
		return 0
	}

	return n
}

func parseFloat(name, value string, fields logrus.Fields) float64 {
	if value == "" {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithFields(fields).WithFields(logrus.Fields{
			name + "_value": value,
			"error":         err.Error(),
		}).Warnf("insights: error converting %s to float", name)
		return 0
	}

	return f
}
