package insighting

import (
	"context"
	"time"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

// MetaAdsProvider define as operações da Meta que o orquestrador consome
type MetaAdsProvider interface {
	ListAdAccounts(ctx context.Context, token string) ([]domain.AdAccount, error)
	ListCampaigns(ctx context.Context, token, accountID string) ([]domain.AdEntity, error)
	ListAdSets(ctx context.Context, token, campaignID string) ([]domain.AdEntity, error)
	ListAds(ctx context.Context, token, adSetID string) ([]domain.AdEntity, error)
	GetInsights(ctx context.Context, token, accountID string, options domain.InsightOptions) ([]domain.InsightRow, error)
	UpdateStatus(ctx context.Context, token, entityID string, status domain.EntityStatus) error
}

// ResponseCache é o subconjunto do cache de respostas usado aqui
type ResponseCache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	DeleteFunc(match func(key string) bool) int
}

// Insighter é a interface consumida pelos handlers
type Insighter interface {
	// GetCampaignsWithInsights lista as campanhas da conta com as métricas do período
	GetCampaignsWithInsights(ctx context.Context, req domain.InsightsRequest) (*domain.EntitiesResponse, error)

	// GetAdSetsWithInsights lista os conjuntos de uma campanha (req.ParentID)
	GetAdSetsWithInsights(ctx context.Context, req domain.InsightsRequest) (*domain.EntitiesResponse, error)

	// GetAdsWithInsights lista os anúncios de um conjunto (req.ParentID)
	GetAdsWithInsights(ctx context.Context, req domain.InsightsRequest) (*domain.EntitiesResponse, error)

	// GetAccountSummary consolida a conta inteira no período
	GetAccountSummary(ctx context.Context, req domain.InsightsRequest) (*domain.SummaryResponse, error)

	// GetDailyInsights retorna a série diária da conta para os gráficos
	GetDailyInsights(ctx context.Context, req domain.InsightsRequest) (*domain.DailyResponse, error)

	// UpdateEntityStatus pausa ou ativa uma entidade e invalida o cache da conta
	UpdateEntityStatus(ctx context.Context, token, accountID, entityID string, status domain.EntityStatus) error

	// ListAdAccounts lista as contas visíveis para o token
	ListAdAccounts(ctx context.Context, token string) ([]domain.AdAccount, error)
}
