package cache

import (
	"slices"
	"strings"
	"time"

	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

// LongWindowDays é a partir de quantos dias um intervalo explícito usa o TTL longo
const LongWindowDays = 90

// BuildKey monta scope:conta:período:nível:breakdowns:filtro. Breakdowns e filtro
// são ordenados, então a ordem recebida não muda a chave.
func BuildKey(scope, accountID string, options domain.InsightOptions) string {
	return strings.Join([]string{
		scope,
		domain.NormalizeAccountID(accountID),
		datePart(options.DateRange),
		string(options.Level),
		canonicalList(options.Breakdowns),
		canonicalList(options.EntityIDFilter),
	}, ":")
}

// AccountMarker identifica as chaves de uma conta, para invalidação
func AccountMarker(accountID string) string {
	return ":" + domain.NormalizeAccountID(accountID) + ":"
}

func datePart(dateRange domain.DateRange) string {
	if dateRange.TimeRange != nil {
		return dateRange.TimeRange.Since + "_" + dateRange.TimeRange.Until
	}
	return string(dateRange.Preset)
}

func canonicalList(values []string) string {
	if len(values) == 0 {
		return ""
	}

	sorted := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			sorted = append(sorted, v)
		}
	}
	slices.Sort(sorted)

	return strings.Join(slices.Compact(sorted), ",")
}

// TTLPolicy são os três tiers de TTL
type TTLPolicy struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

func NewTTLPolicy(cfg config.Cache) TTLPolicy {
	return TTLPolicy{
		Short:  cfg.ShortTTL(),
		Medium: cfg.MediumTTL(),
		Long:   cfg.LongTTL(),
	}
}

// TTLFor escolhe o tier: curto para hoje, longo para 90 dias ou máximo, médio no resto
func (p TTLPolicy) TTLFor(dateRange domain.DateRange, today time.Time) time.Duration {
	switch dateRange.Preset {
	case domain.PresetToday:
		return p.Short
	case domain.PresetLast90d, domain.PresetMaximum:
		return p.Long
	}

	if tr := dateRange.TimeRange; tr != nil {
		todayStr := today.Format(time.DateOnly)
		if tr.Since == todayStr && tr.Until == todayStr {
			return p.Short
		}

		if days, err := tr.Days(); err == nil && days >= LongWindowDays {
			return p.Long
		}
	}

	return p.Medium
}
