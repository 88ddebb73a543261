package domain

import (
	"fmt"
	"strings"
	"time"
)

// DatePreset é o token de período relativo aceito pela Graph API
type DatePreset string

const (
	PresetToday     DatePreset = "today"
	PresetYesterday DatePreset = "yesterday"
	PresetLast7d    DatePreset = "last_7d"
	PresetLast14d   DatePreset = "last_14d"
	PresetLast30d   DatePreset = "last_30d"
	PresetLast90d   DatePreset = "last_90d"
	PresetThisMonth DatePreset = "this_month"
	PresetLastMonth DatePreset = "last_month"
	PresetThisYear  DatePreset = "this_year"
	PresetLastYear  DatePreset = "last_year"

	// PresetMaximum não existe na Graph API: vira time_range de dois anos
	PresetMaximum DatePreset = "maximum"
)

// MaximumRangeYears é quantos anos para trás o período "Maximum" cobre
const MaximumRangeYears = 2

var dateRangeLabels = map[string]DatePreset{
	"today":        PresetToday,
	"yesterday":    PresetYesterday,
	"last 7 days":  PresetLast7d,
	"last 14 days": PresetLast14d,
	"last 30 days": PresetLast30d,
	"last 90 days": PresetLast90d,
	"this month":   PresetThisMonth,
	"last month":   PresetLastMonth,
	"this year":    PresetThisYear,
	"last year":    PresetLastYear,
	"maximum":      PresetMaximum,
}

// ParseDatePreset aceita tanto o rótulo exibido ("Last 7 Days") quanto o token ("last_7d")
func ParseDatePreset(value string) (DatePreset, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if preset, ok := dateRangeLabels[normalized]; ok {
		return preset, nil
	}

	for _, preset := range dateRangeLabels {
		if string(preset) == normalized {
			return preset, nil
		}
	}

	return "", fmt.Errorf("invalid date range %q", value)
}

// TimeRange é um intervalo explícito, datas no formato YYYY-MM-DD
type TimeRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}

func NewTimeRange(since, until time.Time) *TimeRange {
	return &TimeRange{
		Since: since.Format(time.DateOnly),
		Until: until.Format(time.DateOnly),
	}
}

// Days retorna a quantidade de dias cobertos, contando os dois extremos
func (t *TimeRange) Days() (int, error) {
	since, until, err := t.bounds()
	if err != nil {
		return 0, err
	}

	return int(until.Sub(since).Hours()/24) + 1, nil
}

func (t *TimeRange) Validate() error {
	_, _, err := t.bounds()
	return err
}

func (t *TimeRange) bounds() (time.Time, time.Time, error) {
	since, err := time.Parse(time.DateOnly, t.Since)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid since date %q: %w", t.Since, err)
	}

	until, err := time.Parse(time.DateOnly, t.Until)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid until date %q: %w", t.Until, err)
	}

	if until.Before(since) {
		return time.Time{}, time.Time{}, fmt.Errorf("until date %s is before since date %s", t.Until, t.Since)
	}

	return since, until, nil
}

// DateRange seleciona exatamente um entre preset e intervalo explícito
type DateRange struct {
	Preset    DatePreset `json:"preset,omitempty"`
	TimeRange *TimeRange `json:"time_range,omitempty"`
}

func (d DateRange) IsMaximum() bool {
	return d.Preset == PresetMaximum
}

// Resolve converte o período em algo que a Graph API entende. "Maximum" vira
// since = hoje - 2 anos, until = hoje.
func (d DateRange) Resolve(today time.Time) (DateRange, error) {
	if d.Preset != "" && d.TimeRange != nil {
		return DateRange{}, fmt.Errorf("date range must set either a preset or a time range, not both")
	}

	if d.TimeRange != nil {
		if err := d.TimeRange.Validate(); err != nil {
			return DateRange{}, err
		}
		return d, nil
	}

	switch d.Preset {
	case "":
		return DateRange{Preset: PresetLast30d}, nil
	case PresetMaximum:
		return DateRange{TimeRange: MaximumTimeRange(today)}, nil
	default:
		return d, nil
	}
}

func MaximumTimeRange(today time.Time) *TimeRange {
	return NewTimeRange(today.AddDate(-MaximumRangeYears, 0, 0), today)
}

// InsightOptions são os parâmetros de uma consulta de insights
type InsightOptions struct {
	DateRange      DateRange
	Level          EntityLevel
	Breakdowns     []string
	EntityIDFilter []string
	// ParentID filtra pelo pai do nível: campanha para adset, adset para ad
	ParentID string
	// TimeIncrement = 1 pede uma linha por dia
	TimeIncrement int
}

// InsightsRequest é o contrato de entrada das rotas de insights
type InsightsRequest struct {
	AccountID      string
	AccessToken    string
	DateRange      DateRange
	Level          EntityLevel
	Breakdowns     []string
	EntityIDFilter []string
	// ParentID restringe a listagem: campanha para adsets, adset para ads
	ParentID string
}

// Options monta as opções de insights já com o período resolvido
func (r *InsightsRequest) Options(today time.Time) (InsightOptions, error) {
	dateRange, err := r.DateRange.Resolve(today)
	if err != nil {
		return InsightOptions{}, err
	}

	return InsightOptions{
		DateRange:      dateRange,
		Level:          r.Level,
		Breakdowns:     r.Breakdowns,
		EntityIDFilter: r.EntityIDFilter,
		ParentID:       r.ParentID,
	}, nil
}

// InsightsError é o formato estruturado de falha devolvido ao cliente
type InsightsError struct {
	Kind         string   `json:"kind"`
	Message      string   `json:"message,omitempty"`
	RetryAfter   *int64   `json:"retry_after,omitempty"`
	UsagePercent *float64 `json:"usage_percent,omitempty"`
}

// EntitiesResponse é o contrato de saída das rotas de entidades com insights
type EntitiesResponse struct {
	Entities      []AdEntity     `json:"entities"`
	CacheHit      bool           `json:"cache_hit"`
	Partial       bool           `json:"partial"`
	InsightsError *InsightsError `json:"insights_error,omitempty"`
}

type SummaryResponse struct {
	AccountID string               `json:"account_id"`
	Insights  *PerformanceSnapshot `json:"insights"`
	CacheHit  bool                 `json:"cache_hit"`
}

type DailyResponse struct {
	AccountID string             `json:"account_id"`
	Days      []DailyPerformance `json:"days"`
	CacheHit  bool               `json:"cache_hit"`
}
