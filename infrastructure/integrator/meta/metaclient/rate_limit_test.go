package metaclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUsage(t *testing.T) {
	tests := []struct {
		name           string
		headers        map[string]string
		wantPercent    float64
		wantRetryAfter *time.Duration
	}{
		{
			name:        "Sem headers",
			headers:     map[string]string{},
			wantPercent: 0,
		},
		{
			name:        "X-App-Usage usa o maior dos três campos",
			headers:     map[string]string{"X-App-Usage": `{"call_count":12,"total_cputime":40,"total_time":33}`},
			wantPercent: 40,
		},
		{
			name: "X-Ad-Account-Usage com tempo de reset em segundos",
			headers: map[string]string{
				"X-App-Usage":        `{"call_count":10}`,
				"X-Ad-Account-Usage": `{"acc_id_util_pct":76.5,"reset_time_duration":120}`,
			},
			wantPercent:    76.5,
			wantRetryAfter: durationPtr(2 * time.Minute),
		},
		{
			name: "X-Business-Use-Case-Usage com tempo estimado em minutos",
			headers: map[string]string{
				"X-Business-Use-Case-Usage": `{"111":[{"type":"ads_insights","call_count":98,"total_cputime":20,"total_time":10,"estimated_time_to_regain_access":3}],` +
					`"222":[{"type":"ads_management","call_count":5,"estimated_time_to_regain_access":1}]}`,
			},
			wantPercent:    98,
			wantRetryAfter: durationPtr(3 * time.Minute),
		},
		{
			name: "O maior tempo de liberação vence entre os headers",
			headers: map[string]string{
				"X-Ad-Account-Usage":        `{"acc_id_util_pct":50,"reset_time_duration":600}`,
				"X-Business-Use-Case-Usage": `{"111":[{"call_count":60,"estimated_time_to_regain_access":2}]}`,
			},
			wantPercent:    60,
			wantRetryAfter: durationPtr(10 * time.Minute),
		},
		{
			name: "Header malformado é ignorado",
			headers: map[string]string{
				"X-App-Usage":        `{call_count:`,
				"X-Ad-Account-Usage": `{"acc_id_util_pct":20}`,
			},
			wantPercent: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			for k, v := range tt.headers {
				headers.Set(k, v)
			}

			usage := ParseUsage(headers)

			assert.Equal(t, tt.wantPercent, usage.Percent)
			if tt.wantRetryAfter == nil {
				assert.Nil(t, usage.RetryAfter)
				return
			}
			require.NotNil(t, usage.RetryAfter)
			assert.Equal(t, *tt.wantRetryAfter, *usage.RetryAfter)
		})
	}
}

func TestClassify_SuccessAboveThresholdIsNotAnError(t *testing.T) {
	client := &MetaClient{UsageThreshold: 90}

	err := client.classify(http.StatusOK, http.Header{}, []byte(`{"data":[]}`), Usage{Percent: 99})

	assert.NoError(t, err)
}

func TestClassify_ErrorPayloadOn200(t *testing.T) {
	client := &MetaClient{}

	err := client.classify(http.StatusOK, http.Header{}, []byte(`{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`), Usage{})

	assert.Error(t, err)
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}
