package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

func (c *MetaClient) GetAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Set("fields", metadomain.AdAccountFields)

	items, err := c.GetAllPages(ctx, "me/adaccounts", params, token)
	if err != nil {
		return nil, err
	}

	return decodeItems[metadomain.AdAccount](items)
}

func (c *MetaClient) GetCampaignsByAccountID(ctx context.Context, token, accountID string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Set("fields", metadomain.CampaignFields)

	items, err := c.GetAllPages(ctx, fmt.Sprintf("%s/campaigns", domain.NormalizeAccountID(accountID)), params, token)
	if err != nil {
		return nil, err
	}

	return decodeItems[metadomain.Campaign](items)
}

func (c *MetaClient) GetAdSetsByCampaignID(ctx context.Context, token, campaignID string) ([]metadomain.AdSet, error) {
	params := url.Values{}
	params.Set("fields", metadomain.AdSetFields)

	items, err := c.GetAllPages(ctx, fmt.Sprintf("%s/adsets", campaignID), params, token)
	if err != nil {
		return nil, err
	}

	return decodeItems[metadomain.AdSet](items)
}

func (c *MetaClient) GetAdsByAdSetID(ctx context.Context, token, adSetID string) ([]metadomain.Ad, error) {
	params := url.Values{}
	params.Set("fields", metadomain.AdFields)

	items, err := c.GetAllPages(ctx, fmt.Sprintf("%s/ads", adSetID), params, token)
	if err != nil {
		return nil, err
	}

	return decodeItems[metadomain.Ad](items)
}

// GetInsights recebe os parâmetros já montados (level, date_preset ou time_range, breakdowns)
func (c *MetaClient) GetInsights(ctx context.Context, token, accountID string, params url.Values) ([]metadomain.Insight, error) {
	if params == nil {
		params = url.Values{}
	}
	if params.Get("fields") == "" {
		params.Set("fields", metadomain.InsightFields)
	}

	items, err := c.GetAllPages(ctx, fmt.Sprintf("%s/insights", domain.NormalizeAccountID(accountID)), params, token)
	if err != nil {
		return nil, err
	}

	return decodeItems[metadomain.Insight](items)
}

func (c *MetaClient) UpdateStatus(ctx context.Context, token, entityID string, status domain.EntityStatus) error {
	form := url.Values{}
	form.Set("status", string(status))

	resp, err := c.Post(ctx, entityID, form, token)
	if err != nil {
		return err
	}

	var result metadomain.StatusUpdateResponse
	if err := jsonAPI.Unmarshal(resp.Body, &result); err != nil {
		return fmt.Errorf("decode status update response: %w", err)
	}

	if !result.Success {
		return &metadomain.RequestError{
			Message:    fmt.Sprintf("meta did not confirm status change of %s", entityID),
			StatusCode: resp.StatusCode,
		}
	}

	return nil
}
