package insighting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/cache"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

const (
	scopeCampaigns = "campaigns"
	scopeAdSets    = "adsets"
	scopeAds       = "ads"
	scopeSummary   = "summary"
	scopeDaily     = "daily"
)

var _ Insighter = (*Service)(nil)

// Service orquestra cache, Meta e merge para cada rota de insights
type Service struct {
	meta           MetaAdsProvider
	cache          ResponseCache
	ttl            cache.TTLPolicy
	requestTimeout time.Duration
	now            func() time.Time
}

func NewService(cfg *config.Config, meta MetaAdsProvider, responseCache ResponseCache) *Service {
	return &Service{
		meta:           meta,
		cache:          responseCache,
		ttl:            cache.NewTTLPolicy(cfg.Cache),
		requestTimeout: cfg.Server.RequestTimeout(),
		now:            time.Now,
	}
}

// WithClock troca o relógio usado para resolver "hoje"
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// entityLister recebe a requisição já normalizada (act_ no id da conta)
type entityLister func(ctx context.Context, req domain.InsightsRequest) ([]domain.AdEntity, error)

func (s *Service) GetCampaignsWithInsights(ctx context.Context, req domain.InsightsRequest) (*domain.EntitiesResponse, error) {
	req.Level = domain.LevelCampaign
	req.ParentID = ""

	return s.entitiesWithInsights(ctx, scopeCampaigns, req, func(ctx context.Context, req domain.InsightsRequest) ([]domain.AdEntity, error) {
		return s.meta.ListCampaigns(ctx, req.AccessToken, req.AccountID)
	})
}

func (s *Service) GetAdSetsWithInsights(ctx context.Context, req domain.InsightsRequest) (*domain.EntitiesResponse, error) {
	if req.ParentID == "" {
		return nil, fmt.Errorf("%w: campaign", ErrParentIDRequired)
	}
	req.Level = domain.LevelAdSet

	return s.entitiesWithInsights(ctx, scopeAdSets+"/"+req.ParentID, req, func(ctx context.Context, req domain.InsightsRequest) ([]domain.AdEntity, error) {
		return s.meta.ListAdSets(ctx, req.AccessToken, req.ParentID)
	})
}

func (s *Service) GetAdsWithInsights(ctx context.Context, req domain.InsightsRequest) (*domain.EntitiesResponse, error) {
	if req.ParentID == "" {
		return nil, fmt.Errorf("%w: adset", ErrParentIDRequired)
	}
	req.Level = domain.LevelAd

	return s.entitiesWithInsights(ctx, scopeAds+"/"+req.ParentID, req, func(ctx context.Context, req domain.InsightsRequest) ([]domain.AdEntity, error) {
		return s.meta.ListAds(ctx, req.AccessToken, req.ParentID)
	})
}

// entitiesWithInsights: cache -> (entidades || insights) -> merge -> cache.
// Falha nas entidades encerra a requisição; falha nos insights degrada para snapshots zerados.
func (s *Service) entitiesWithInsights(ctx context.Context, scope string, req domain.InsightsRequest, list entityLister) (*domain.EntitiesResponse, error) {
	options, err := s.prepare(&req)
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(scope, req.AccountID, options)
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": req.AccountID,
		"level":      options.Level,
		"cache_key":  key,
	})

	if cached, ok := s.cache.Get(key); ok {
		if response, ok := cached.(*domain.EntitiesResponse); ok {
			logger.Debug("insights: cache hit")
			hit := *response
			hit.CacheHit = true
			return &hit, nil
		}
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	entitiesResult, insightsResult := settleBoth(ctx,
		func(ctx context.Context) ([]domain.AdEntity, error) {
			entities, err := list(ctx, req)
			if err != nil {
				return nil, err
			}
			return filterEntities(entities, options.EntityIDFilter), nil
		},
		func(ctx context.Context) ([]domain.InsightRow, error) {
			return s.meta.GetInsights(ctx, req.AccessToken, req.AccountID, options)
		},
	)

	if !entitiesResult.OK() {
		logger.WithError(entitiesResult.Err).WithFields(log.Fields{
			"error_kind":      ErrorKind(entitiesResult.Err),
			"insights_failed": !insightsResult.OK(),
		}).Error("insights: failed to list entities")
		return nil, entitiesResult.Err
	}

	response := &domain.EntitiesResponse{}

	if !insightsResult.OK() {
		partial := &PartialDataError{AccountID: req.AccountID, Err: insightsResult.Err}
		logger.WithError(partial).WithField("error_kind", ErrorKind(insightsResult.Err)).
			Warn("insights: degrading to zero snapshots")

		response.Entities = ZeroInsights(entitiesResult.Value)
		response.Partial = true
		response.InsightsError = DescribeError(insightsResult.Err)

		// resposta parcial não vai para o cache
		return response, nil
	}

	response.Entities = MergeInsights(entitiesResult.Value, insightsResult.Value, options.Level)

	ttl := s.ttl.TTLFor(options.DateRange, s.today())
	s.cache.Set(key, response, ttl)

	logger.WithFields(log.Fields{
		"entities": len(response.Entities),
		"rows":     len(insightsResult.Value),
		"ttl":      ttl.String(),
	}).Debug("insights: response stored")

	return response, nil
}

// GetAccountSummary consolida a conta em um único snapshot
func (s *Service) GetAccountSummary(ctx context.Context, req domain.InsightsRequest) (*domain.SummaryResponse, error) {
	req.Level = domain.LevelAccount
	req.ParentID = ""

	options, err := s.prepare(&req)
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(scopeSummary, req.AccountID, options)
	if cached, ok := s.cache.Get(key); ok {
		if response, ok := cached.(*domain.SummaryResponse); ok {
			hit := *response
			hit.CacheHit = true
			return &hit, nil
		}
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	rows, err := s.meta.GetInsights(ctx, req.AccessToken, req.AccountID, options)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithFields(log.Fields{
			"account_id": req.AccountID,
			"error_kind": ErrorKind(err),
		}).Error("insights: failed to get account summary")
		return nil, err
	}

	// breakdowns geram várias linhas para a conta: todas caem na mesma chave
	snapshots, _ := AggregateRows(rows, func(*domain.InsightRow) string { return req.AccountID })

	summary, ok := snapshots[req.AccountID]
	if !ok {
		summary = domain.ZeroSnapshot()
	}

	response := &domain.SummaryResponse{
		AccountID: req.AccountID,
		Insights:  summary,
	}
	s.cache.Set(key, response, s.ttl.TTLFor(options.DateRange, s.today()))

	return response, nil
}

// GetDailyInsights retorna um ponto por dia, em ordem cronológica
func (s *Service) GetDailyInsights(ctx context.Context, req domain.InsightsRequest) (*domain.DailyResponse, error) {
	req.Level = domain.LevelAccount
	req.ParentID = ""

	options, err := s.prepare(&req)
	if err != nil {
		return nil, err
	}
	options.TimeIncrement = 1

	key := cache.BuildKey(scopeDaily, req.AccountID, options)
	if cached, ok := s.cache.Get(key); ok {
		if response, ok := cached.(*domain.DailyResponse); ok {
			hit := *response
			hit.CacheHit = true
			return &hit, nil
		}
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	rows, err := s.meta.GetInsights(ctx, req.AccessToken, req.AccountID, options)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithFields(log.Fields{
			"account_id": req.AccountID,
			"error_kind": ErrorKind(err),
		}).Error("insights: failed to get daily insights")
		return nil, err
	}

	snapshots, dates := AggregateRows(rows, func(row *domain.InsightRow) string { return row.DateStart })
	sort.Strings(dates)

	days := make([]domain.DailyPerformance, 0, len(dates))
	for _, date := range dates {
		days = append(days, domain.DailyPerformance{
			Date:                date,
			PerformanceSnapshot: *snapshots[date],
		})
	}

	response := &domain.DailyResponse{
		AccountID: req.AccountID,
		Days:      days,
	}
	s.cache.Set(key, response, s.ttl.TTLFor(options.DateRange, s.today()))

	return response, nil
}

// UpdateEntityStatus altera o status na Meta e descarta todo o cache da conta
func (s *Service) UpdateEntityStatus(ctx context.Context, token, accountID, entityID string, status domain.EntityStatus) error {
	if token == "" {
		return ErrAccessTokenRequired
	}
	if entityID == "" {
		return fmt.Errorf("%w: entity ID is required", ErrInvalidOptions)
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	if err := s.meta.UpdateStatus(ctx, token, entityID, status); err != nil {
		return err
	}

	marker := cache.AccountMarker(accountID)
	removed := s.cache.DeleteFunc(func(key string) bool {
		return strings.Contains(key, marker)
	})

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":       domain.NormalizeAccountID(accountID),
		"entity_id":        entityID,
		"status":           status,
		"invalidated_keys": removed,
	}).Info("insights: entity status updated")

	return nil
}

func (s *Service) ListAdAccounts(ctx context.Context, token string) ([]domain.AdAccount, error) {
	if token == "" {
		return nil, ErrAccessTokenRequired
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	return s.meta.ListAdAccounts(ctx, token)
}

// prepare valida a requisição, normaliza a conta e resolve o período
func (s *Service) prepare(req *domain.InsightsRequest) (domain.InsightOptions, error) {
	if strings.TrimSpace(req.AccountID) == "" {
		return domain.InsightOptions{}, ErrAccountIDRequired
	}
	if req.AccessToken == "" {
		return domain.InsightOptions{}, ErrAccessTokenRequired
	}

	req.AccountID = domain.NormalizeAccountID(req.AccountID)

	options, err := req.Options(s.today())
	if err != nil {
		return domain.InsightOptions{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	return options, nil
}

func (s *Service) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

func (s *Service) today() time.Time {
	return s.now()
}

// filterEntities mantém só os ids pedidos, na ordem da listagem. Filtro vazio mantém tudo.
func filterEntities(entities []domain.AdEntity, ids []string) []domain.AdEntity {
	if len(ids) == 0 {
		return entities
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	filtered := make([]domain.AdEntity, 0, len(entities))
	for _, entity := range entities {
		if _, ok := wanted[entity.ID]; ok {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}
