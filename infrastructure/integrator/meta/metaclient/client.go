package metaclient

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultMaxBackoff = 5 * time.Second
	defaultPageLimit  = "500"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Client interface {
	Get(ctx context.Context, resource string, params url.Values, token string) (*Response, error)
	GetAllPages(ctx context.Context, resource string, params url.Values, token string) ([]json.RawMessage, error)
	Post(ctx context.Context, resource string, form url.Values, token string) (*Response, error)

	GetAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error)
	GetCampaignsByAccountID(ctx context.Context, token, accountID string) ([]metadomain.Campaign, error)
	GetAdSetsByCampaignID(ctx context.Context, token, campaignID string) ([]metadomain.AdSet, error)
	GetAdsByAdSetID(ctx context.Context, token, adSetID string) ([]metadomain.Ad, error)
	GetInsights(ctx context.Context, token, accountID string, params url.Values) ([]metadomain.Insight, error)
	UpdateStatus(ctx context.Context, token, entityID string, status domain.EntityStatus) error
	DebugToken(ctx context.Context, token string) (*metadomain.TokenInfo, error)
}

// Response é o corpo cru de uma chamada com o uso de cota informado pela Meta
type Response struct {
	StatusCode int
	Body       []byte
	Usage      Usage
}

type MetaClient struct {
	HTTP           HTTPClient
	BaseURL        string
	AppID          string
	AppSecret      string
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	UsageThreshold float64
	MaxPages       int
	Limiter        *rate.Limiter
	Sleep          func(ctx context.Context, d time.Duration) error
	Now            func() time.Time
}

func NewClient(cfg *config.Config) *MetaClient {
	limit := rate.Inf
	if cfg.Meta.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Meta.RequestsPerSecond)
	}

	burst := cfg.Meta.RequestBurst
	if burst <= 0 {
		burst = 1
	}

	return &MetaClient{
		HTTP:           &http.Client{Timeout: cfg.Meta.HTTPTimeout()},
		BaseURL:        strings.TrimSuffix(cfg.Meta.URL, "/"),
		AppID:          cfg.Meta.AppID,
		AppSecret:      cfg.Meta.AppSecret,
		MaxRetries:     cfg.Meta.MaxRetries,
		InitialBackoff: cfg.Meta.RetryBackoff(),
		MaxBackoff:     defaultMaxBackoff,
		UsageThreshold: cfg.Meta.UsageThresholdPercent,
		MaxPages:       cfg.Meta.MaxPages,
		Limiter:        rate.NewLimiter(limit, burst),
		Sleep:          sleepContext,
		Now:            time.Now,
	}
}

func (c *MetaClient) Get(ctx context.Context, resource string, params url.Values, token string) (*Response, error) {
	endpoint, err := c.endpoint(resource)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, http.MethodGet, endpoint, params, token)
}

func (c *MetaClient) Post(ctx context.Context, resource string, form url.Values, token string) (*Response, error) {
	endpoint, err := c.endpoint(resource)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, http.MethodPost, endpoint, form, token)
}

func (c *MetaClient) endpoint(resource string) (*url.URL, error) {
	endpoint, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse meta base url")
	}

	endpoint.Path = path.Join(endpoint.Path, strings.TrimPrefix(resource, "/"))
	return endpoint, nil
}

// do repete apenas TransientError, com backoff exponencial
func (c *MetaClient) do(ctx context.Context, method string, endpoint *url.URL, params url.Values, token string) (*Response, error) {
	backoff := c.InitialBackoff
	attempt := 0

	for {
		attempt++
		resp, err := c.doOnce(ctx, method, endpoint, params, token)
		if err == nil {
			return resp, nil
		}

		var transient *metadomain.TransientError
		if !errors.As(err, &transient) || attempt > c.MaxRetries || ctx.Err() != nil {
			return nil, err
		}

		logrus.WithFields(logrus.Fields{
			"path":    endpoint.Path,
			"attempt": attempt,
			"backoff": backoff.String(),
			"error":   err.Error(),
		}).Warn("meta: transient error, retrying")

		if sleepErr := c.Sleep(ctx, backoff); sleepErr != nil {
			return nil, err
		}
		backoff = nextBackoff(backoff, c.MaxBackoff)
	}
}

func (c *MetaClient) doOnce(ctx context.Context, method string, endpoint *url.URL, params url.Values, token string) (*Response, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, &metadomain.TransientError{Message: "waiting for request slot: " + err.Error(), Err: err}
		}
	}

	values := url.Values{}
	for key, vals := range params {
		values[key] = append([]string(nil), vals...)
	}
	if token != "" {
		values.Set("access_token", token)
		if c.AppSecret != "" {
			values.Set("appsecret_proof", AppSecretProof(token, c.AppSecret))
		}
	}

	target := *endpoint
	var body io.Reader
	if method == http.MethodGet || method == http.MethodDelete {
		target.RawQuery = values.Encode()
	} else {
		body = strings.NewReader(values.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "build meta request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	httpResp, err := c.HTTP.Do(req)
	if err != nil {
		// a URL carrega o token; não entra na mensagem
		cause := err
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			cause = urlErr.Err
		}
		return nil, &metadomain.TransientError{Message: "send request: " + cause.Error(), Err: cause}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &metadomain.TransientError{Message: "read response: " + err.Error(), StatusCode: httpResp.StatusCode, Err: err}
	}

	usage := ParseUsage(httpResp.Header)

	if apiErr := c.classify(httpResp.StatusCode, httpResp.Header, raw, usage); apiErr != nil {
		logrus.WithFields(logrus.Fields{
			"path":          endpoint.Path,
			"status_code":   httpResp.StatusCode,
			"usage_percent": usage.Percent,
			"error":         apiErr.Error(),
		}).Warn("meta: request failed")
		return nil, apiErr
	}

	if c.UsageThreshold > 0 && usage.Percent >= c.UsageThreshold {
		logrus.WithFields(logrus.Fields{
			"path":          endpoint.Path,
			"usage_percent": usage.Percent,
		}).Warn("meta: usage above threshold")
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       raw,
		Usage:      usage,
	}, nil
}

// AppSecretProof é o HMAC-SHA256 do token com o app secret, em hex
func AppSecretProof(token, appSecret string) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func nextBackoff(current, max time.Duration) time.Duration {
	next := current * 2
	if max > 0 && next > max {
		return max
	}
	return next
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
