package metaclient

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
)

const (
	headerAppUsage       = "X-App-Usage"
	headerAdAccountUsage = "X-Ad-Account-Usage"
	headerBusinessUsage  = "X-Business-Use-Case-Usage"
)

// Usage resume os headers de uso da Meta: maior percentual e tempo estimado de liberação
type Usage struct {
	Percent    float64
	RetryAfter *time.Duration
}

type appUsage struct {
	CallCount    float64 `json:"call_count"`
	TotalCPUTime float64 `json:"total_cputime"`
	TotalTime    float64 `json:"total_time"`
}

type adAccountUsage struct {
	AccIDUtilPct      float64 `json:"acc_id_util_pct"`
	ResetTimeDuration float64 `json:"reset_time_duration"` // segundos
}

type businessUseCaseUsage struct {
	Type                        string  `json:"type"`
	CallCount                   float64 `json:"call_count"`
	TotalCPUTime                float64 `json:"total_cputime"`
	TotalTime                   float64 `json:"total_time"`
	EstimatedTimeToRegainAccess float64 `json:"estimated_time_to_regain_access"` // minutos
}

// ParseUsage lê os três headers de uso. Headers malformados são ignorados.
func ParseUsage(headers http.Header) Usage {
	usage := Usage{}

	if raw := strings.TrimSpace(headers.Get(headerAppUsage)); raw != "" {
		var app appUsage
		if err := jsonAPI.Unmarshal([]byte(raw), &app); err == nil {
			usage.Percent = maxFloat(usage.Percent, app.CallCount, app.TotalCPUTime, app.TotalTime)
		}
	}

	if raw := strings.TrimSpace(headers.Get(headerAdAccountUsage)); raw != "" {
		var account adAccountUsage
		if err := jsonAPI.Unmarshal([]byte(raw), &account); err == nil {
			usage.Percent = maxFloat(usage.Percent, account.AccIDUtilPct)
			if account.ResetTimeDuration > 0 {
				usage.RetryAfter = longest(usage.RetryAfter, time.Duration(account.ResetTimeDuration)*time.Second)
			}
		}
	}

	if raw := strings.TrimSpace(headers.Get(headerBusinessUsage)); raw != "" {
		var business map[string][]businessUseCaseUsage
		if err := jsonAPI.Unmarshal([]byte(raw), &business); err == nil {
			for _, entries := range business {
				for _, entry := range entries {
					usage.Percent = maxFloat(usage.Percent, entry.CallCount, entry.TotalCPUTime, entry.TotalTime)
					if entry.EstimatedTimeToRegainAccess > 0 {
						usage.RetryAfter = longest(usage.RetryAfter, time.Duration(entry.EstimatedTimeToRegainAccess*60)*time.Second)
					}
				}
			}
		}
	}

	return usage
}

// classify devolve nil para respostas de sucesso
func (c *MetaClient) classify(statusCode int, headers http.Header, raw []byte, usage Usage) error {
	var payload metadomain.ErrorResponse
	hasPayload := len(raw) > 0 && jsonAPI.Unmarshal(raw, &payload) == nil && (payload.Error.Code != 0 || payload.Error.Message != "")

	if statusCode >= 200 && statusCode < 300 && !hasPayload {
		return nil
	}

	overThreshold := c.UsageThreshold > 0 && usage.Percent >= c.UsageThreshold
	if statusCode == http.StatusTooManyRequests || (hasPayload && payload.IsRateLimit()) || overThreshold {
		rateErr := &metadomain.RateLimitError{
			StatusCode: statusCode,
			RetryAfter: retryAfter(headers, &payload, usage, c.now()),
		}
		if hasPayload {
			rateErr.Message = payload.Error.Message
			rateErr.Code = payload.Error.Code
			rateErr.Subcode = payload.Error.ErrorSubcode
		}
		if usage.Percent > 0 {
			percent := usage.Percent
			rateErr.UsagePercent = &percent
		}
		return rateErr
	}

	if statusCode >= 500 || (hasPayload && payload.Error.IsTransient) {
		message := http.StatusText(statusCode)
		if hasPayload {
			message = payload.Error.Message
		}
		return &metadomain.TransientError{Message: message, StatusCode: statusCode}
	}

	if !hasPayload {
		payload.Error.Message = http.StatusText(statusCode)
		if payload.Error.Message == "" {
			payload.Error.Message = "unexpected status " + strconv.Itoa(statusCode)
		}
	}

	return metadomain.NewRequestError(statusCode, &payload)
}

// retryAfter segue a ordem: header Retry-After, error_data do payload, headers de uso
func retryAfter(headers http.Header, payload *metadomain.ErrorResponse, usage Usage, now time.Time) *time.Duration {
	if value := strings.TrimSpace(headers.Get("Retry-After")); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
			d := time.Duration(seconds) * time.Second
			return &d
		}
		if at, err := http.ParseTime(value); err == nil {
			d := at.Sub(now)
			if d < 0 {
				d = 0
			}
			return &d
		}
	}

	if payload != nil && payload.Error.ErrorData != nil && payload.Error.ErrorData.EstimatedTimeToRegainAccess > 0 {
		d := time.Duration(payload.Error.ErrorData.EstimatedTimeToRegainAccess) * time.Minute
		return &d
	}

	return usage.RetryAfter
}

func (c *MetaClient) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func maxFloat(current float64, values ...float64) float64 {
	for _, v := range values {
		if v > current {
			current = v
		}
	}
	return current
}

func longest(current *time.Duration, candidate time.Duration) *time.Duration {
	if current == nil || candidate > *current {
		return &candidate
	}
	return current
}
