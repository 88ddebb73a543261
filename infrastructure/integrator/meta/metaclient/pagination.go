package metaclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
)

type page struct {
	Data   []json.RawMessage `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// GetAllPages segue paging.next até acabar ou até MaxPages
func (c *MetaClient) GetAllPages(ctx context.Context, resource string, params url.Values, token string) ([]json.RawMessage, error) {
	endpoint, err := c.endpoint(resource)
	if err != nil {
		return nil, err
	}

	if params == nil {
		params = url.Values{}
	}
	if params.Get("limit") == "" {
		params.Set("limit", defaultPageLimit)
	}

	items := make([]json.RawMessage, 0)
	current := params
	pages := 0

	for {
		resp, err := c.do(ctx, http.MethodGet, endpoint, current, token)
		if err != nil {
			return nil, err
		}
		pages++

		var p page
		if err := jsonAPI.Unmarshal(resp.Body, &p); err != nil {
			return nil, errors.Wrap(err, "decode meta page")
		}
		items = append(items, p.Data...)

		if p.Paging.Next == "" {
			return items, nil
		}

		if c.MaxPages > 0 && pages >= c.MaxPages {
			logrus.WithFields(logrus.Fields{
				"path":      endpoint.Path,
				"pages":     pages,
				"max_pages": c.MaxPages,
			}).Warn("meta: pagination truncated")
			return items, nil
		}

		endpoint, current, err = nextPage(endpoint, p.Paging.Next)
		if err != nil {
			return nil, err
		}
	}
}

// nextPage mantém host e esquema configurados; só path e query vêm do paging.next.
// O token é removido porque do() o adiciona de novo.
func nextPage(current *url.URL, next string) (*url.URL, url.Values, error) {
	parsed, err := url.Parse(next)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parse paging.next")
	}

	endpoint := *current
	endpoint.Path = parsed.Path
	endpoint.RawQuery = ""

	query := parsed.Query()
	query.Del("access_token")
	query.Del("appsecret_proof")

	return &endpoint, query, nil
}

func decodeItems[T any](items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := jsonAPI.Unmarshal(item, &v); err != nil {
			return nil, errors.Wrap(err, "decode meta item")
		}
		out = append(out, v)
	}
	return out, nil
}
