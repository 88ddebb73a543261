package meta

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

var today = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// fakeClient implementa só o que cada teste usa; o resto entra em pânico via interface nula
type fakeClient struct {
	metaclient.Client

	adAccounts  []metadomain.AdAccount
	adSets      []metadomain.AdSet
	insights    []metadomain.Insight
	tokenInfo   *metadomain.TokenInfo
	err         error
	lastParams  url.Values
	lastAccount string
}

func (f *fakeClient) GetAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error) {
	return f.adAccounts, f.err
}

func (f *fakeClient) GetAdSetsByCampaignID(ctx context.Context, token, campaignID string) ([]metadomain.AdSet, error) {
	return f.adSets, f.err
}

func (f *fakeClient) GetInsights(ctx context.Context, token, accountID string, params url.Values) ([]metadomain.Insight, error) {
	f.lastParams = params
	f.lastAccount = accountID
	return f.insights, f.err
}

func (f *fakeClient) DebugToken(ctx context.Context, token string) (*metadomain.TokenInfo, error) {
	return f.tokenInfo, f.err
}

func newIntegrator(client metaclient.Client) *MetaIntegrator {
	integrator := New(client)
	integrator.Now = func() time.Time { return today }
	return integrator
}

func TestBuildInsightParams(t *testing.T) {
	tests := []struct {
		name     string
		options  domain.InsightOptions
		validate func(t *testing.T, params url.Values)
	}{
		{
			name:    "Preset com nível padrão de campanha",
			options: domain.InsightOptions{DateRange: domain.DateRange{Preset: domain.PresetLast7d}},
			validate: func(t *testing.T, params url.Values) {
				assert.Equal(t, "last_7d", params.Get("date_preset"))
				assert.Equal(t, "campaign", params.Get("level"))
				assert.Equal(t, metadomain.InsightFields, params.Get("fields"))
				assert.Empty(t, params.Get("time_range"))
				assert.Empty(t, params.Get("filtering"))
			},
		},
		{
			name:    "Máximo vira time_range de dois anos",
			options: domain.InsightOptions{DateRange: domain.DateRange{Preset: domain.PresetMaximum}, Level: domain.LevelAccount},
			validate: func(t *testing.T, params url.Values) {
				assert.Empty(t, params.Get("date_preset"))
				assert.JSONEq(t, `{"since":"2022-03-10","until":"2024-03-10"}`, params.Get("time_range"))
			},
		},
		{
			name: "Breakdowns ordenados e incremento diário",
			options: domain.InsightOptions{
				DateRange:     domain.DateRange{Preset: domain.PresetLast30d},
				Level:         domain.LevelAccount,
				Breakdowns:    []string{"gender", "age"},
				TimeIncrement: 1,
			},
			validate: func(t *testing.T, params url.Values) {
				assert.Equal(t, "age,gender", params.Get("breakdowns"))
				assert.Equal(t, "1", params.Get("time_increment"))
			},
		},
		{
			name: "Filtro por entidades e pelo pai",
			options: domain.InsightOptions{
				DateRange:      domain.DateRange{Preset: domain.PresetToday},
				Level:          domain.LevelAd,
				EntityIDFilter: []string{"a1", "a2"},
				ParentID:       "s1",
			},
			validate: func(t *testing.T, params url.Values) {
				assert.JSONEq(t,
					`[{"field":"ad.id","operator":"IN","value":["a1","a2"]},{"field":"adset.id","operator":"IN","value":["s1"]}]`,
					params.Get("filtering"),
				)
			},
		},
		{
			name: "Nível de conta ignora o filtro de entidades",
			options: domain.InsightOptions{
				Level:          domain.LevelAccount,
				EntityIDFilter: []string{"x"},
			},
			validate: func(t *testing.T, params url.Values) {
				assert.Empty(t, params.Get("filtering"))
				assert.Equal(t, "last_30d", params.Get("date_preset"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := BuildInsightParams(tt.options, today)
			require.NoError(t, err)
			tt.validate(t, params)
		})
	}
}

func TestBuildInsightParams_InvalidRange(t *testing.T) {
	_, err := BuildInsightParams(domain.InsightOptions{
		DateRange: domain.DateRange{TimeRange: &domain.TimeRange{Since: "2024-02-10", Until: "2024-02-01"}},
	}, today)

	assert.Error(t, err)
}

func TestFactoryInsightRow(t *testing.T) {
	insight := &metadomain.Insight{
		CampaignID:  "c1",
		DateStart:   "2024-03-01",
		Spend:       "10.25",
		Impressions: "1000",
		Clicks:      "abc",
		Reach:       "",
		CPM:         "10.25",
		Gender:      "female",
		Actions: []metadomain.Action{
			{ActionType: "purchase", Value: "3"},
			{ActionType: "link_click", Value: "not-a-number"},
		},
	}

	row := FactoryInsightRow(insight)

	assert.Equal(t, "c1", row.CampaignID)
	assert.True(t, decimal.RequireFromString("10.25").Equal(row.Spend))
	assert.Equal(t, int64(1000), row.Impressions)
	assert.Equal(t, int64(0), row.Clicks, "valor inválido vira zero")
	assert.Equal(t, int64(0), row.Reach)
	assert.Equal(t, 10.25, row.CPM)
	assert.Equal(t, map[string]string{"gender": "female"}, row.Breakdowns)
	require.Len(t, row.Actions, 1, "ação com valor inválido é descartada")
	assert.Equal(t, int64(3), row.Results())
}

func TestMetaIntegrator_ListAdAccounts(t *testing.T) {
	client := &fakeClient{adAccounts: []metadomain.AdAccount{
		{ID: "act_1", AccountID: "1", Name: "Loja", AccountStatus: 1, Business: &metadomain.Business{ID: "b1", Name: "Grupo"}},
		{ID: "2", AccountID: "act_2", Name: "Outra", AccountStatus: 2},
	}}

	accounts, err := newIntegrator(client).ListAdAccounts(context.Background(), "token")
	require.NoError(t, err)

	require.Len(t, accounts, 2)
	assert.Equal(t, "act_1", accounts[0].ID)
	assert.Equal(t, "b1", accounts[0].BusinessID)
	assert.True(t, accounts[0].IsActive())
	assert.Equal(t, "act_2", accounts[1].ID)
	assert.Equal(t, "2", accounts[1].AccountID)
	assert.False(t, accounts[1].IsActive())
}

func TestMetaIntegrator_ListAdSets_FillsParent(t *testing.T) {
	client := &fakeClient{adSets: []metadomain.AdSet{{ID: "s1", Name: "Conjunto", Status: "PAUSED"}}}

	entities, err := newIntegrator(client).ListAdSets(context.Background(), "token", "c9")
	require.NoError(t, err)

	require.Len(t, entities, 1)
	assert.Equal(t, domain.LevelAdSet, entities[0].Level)
	assert.Equal(t, "c9", entities[0].ParentID)
	assert.Equal(t, domain.StatusPaused, entities[0].Status)
}

func TestMetaIntegrator_GetInsights(t *testing.T) {
	client := &fakeClient{insights: []metadomain.Insight{{CampaignID: "c1", Impressions: "10"}}}

	rows, err := newIntegrator(client).GetInsights(context.Background(), "token", "999", domain.InsightOptions{
		DateRange: domain.DateRange{Preset: domain.PresetLast7d},
		Level:     domain.LevelCampaign,
	})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(10), rows[0].Impressions)
	assert.Equal(t, "act_999", client.lastAccount)
	assert.Equal(t, "last_7d", client.lastParams.Get("date_preset"))
}

func TestMetaIntegrator_GetInsights_PropagatesError(t *testing.T) {
	rateErr := &metadomain.RateLimitError{StatusCode: 429}
	client := &fakeClient{err: rateErr}

	_, err := newIntegrator(client).GetInsights(context.Background(), "token", "act_1", domain.InsightOptions{})

	assert.True(t, errors.Is(err, rateErr))
}

func TestMetaIntegrator_ValidateToken(t *testing.T) {
	tests := []struct {
		name             string
		info             *metadomain.TokenInfo
		err              error
		wantErr          bool
		wantTokenInvalid bool
	}{
		{
			name: "Token válido com ads_read",
			info: &metadomain.TokenInfo{IsValid: true, Scopes: []string{"ads_read", "ads_management"}},
		},
		{
			name: "Token válido sem escopos informados",
			info: &metadomain.TokenInfo{IsValid: true},
		},
		{
			name:             "Token inválido",
			info:             &metadomain.TokenInfo{IsValid: false},
			wantErr:          true,
			wantTokenInvalid: true,
		},
		{
			name:             "Token expirado",
			info:             &metadomain.TokenInfo{IsValid: true, ExpiresAt: today.Add(-time.Hour).Unix()},
			wantErr:          true,
			wantTokenInvalid: true,
		},
		{
			name:    "Token sem permissão de leitura",
			info:    &metadomain.TokenInfo{IsValid: true, Scopes: []string{"pages_show_list"}},
			wantErr: true,
		},
		{
			name:    "Falha na consulta",
			err:     &metadomain.TransientError{Message: "timeout"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{tokenInfo: tt.info, err: tt.err}

			err := newIntegrator(client).ValidateToken(context.Background(), "token")

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var reqErr *metadomain.RequestError
			if errors.As(err, &reqErr) {
				assert.Equal(t, tt.wantTokenInvalid, reqErr.TokenInvalid)
			} else {
				assert.False(t, tt.wantTokenInvalid)
			}
		})
	}
}
