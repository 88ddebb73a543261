package insighting

import (
	"github.com/shopspring/decimal"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

// accumulator soma as linhas de uma mesma entidade. Valores monetários ficam em decimal
// até a conversão final.
type accumulator struct {
	spend         decimal.Decimal
	purchaseValue decimal.Decimal
	impressions   int64
	clicks        int64
	reach         int64
	results       int64
	frequency     float64
	cpm           float64
	cpc           float64
	ctr           float64
}

func newAccumulator(row *domain.InsightRow) *accumulator {
	return &accumulator{
		spend:         row.Spend,
		purchaseValue: row.PurchaseValue(),
		impressions:   row.Impressions,
		clicks:        row.Clicks,
		reach:         row.Reach,
		results:       row.Results(),
		frequency:     row.Frequency,
		cpm:           row.CPM,
		cpc:           row.CPC,
		ctr:           row.CTR,
	}
}

// add assume fatias disjuntas (por data ou por uma dimensão de breakdown)
func (a *accumulator) add(row *domain.InsightRow) {
	totalImpressions := a.impressions + row.Impressions
	totalClicks := a.clicks + row.Clicks

	a.cpm = weightedAverage(a.cpm, a.impressions, row.CPM, row.Impressions)
	a.cpc = weightedAverage(a.cpc, a.clicks, row.CPC, row.Clicks)

	a.spend = a.spend.Add(row.Spend)
	a.purchaseValue = a.purchaseValue.Add(row.PurchaseValue())
	a.impressions = totalImpressions
	a.clicks = totalClicks
	a.results += row.Results()

	// alcance é estimativa de usuários únicos: não soma
	a.reach = max(a.reach, row.Reach)

	a.ctr = 0
	if totalImpressions > 0 {
		a.ctr = float64(totalClicks) / float64(totalImpressions) * 100
	}

	a.frequency = 0
	if a.reach > 0 {
		a.frequency = float64(a.impressions) / float64(a.reach)
	}
}

// snapshot recalcula ROAS e custo por resultado a partir dos totais
func (a *accumulator) snapshot() *domain.PerformanceSnapshot {
	snapshot := &domain.PerformanceSnapshot{
		Spend:         a.spend.InexactFloat64(),
		Impressions:   a.impressions,
		Clicks:        a.clicks,
		Reach:         a.reach,
		Frequency:     a.frequency,
		CPM:           a.cpm,
		CPC:           a.cpc,
		CTR:           a.ctr,
		Results:       a.results,
		PurchaseValue: a.purchaseValue.InexactFloat64(),
	}

	if !a.spend.IsZero() {
		snapshot.ROAS = a.purchaseValue.Div(a.spend).InexactFloat64()
	}

	if a.results > 0 {
		snapshot.CostPerResult = a.spend.Div(decimal.NewFromInt(a.results)).InexactFloat64()
	}

	return snapshot
}

func weightedAverage(v1 float64, w1 int64, v2 float64, w2 int64) float64 {
	total := w1 + w2
	if total <= 0 {
		return 0
	}

	return (v1*float64(w1) + v2*float64(w2)) / float64(total)
}

// AggregateRows agrupa as linhas pela chave de keyFn. Retorna também as chaves na
// ordem em que apareceram. Linhas com chave vazia são ignoradas.
func AggregateRows(rows []domain.InsightRow, keyFn func(*domain.InsightRow) string) (map[string]*domain.PerformanceSnapshot, []string) {
	accumulators := make(map[string]*accumulator, len(rows))
	order := make([]string, 0, len(rows))

	for i := range rows {
		row := &rows[i]

		key := keyFn(row)
		if key == "" {
			continue
		}

		if acc, ok := accumulators[key]; ok {
			acc.add(row)
			continue
		}

		accumulators[key] = newAccumulator(row)
		order = append(order, key)
	}

	snapshots := make(map[string]*domain.PerformanceSnapshot, len(accumulators))
	for key, acc := range accumulators {
		snapshots[key] = acc.snapshot()
	}

	return snapshots, order
}

// MergeInsights devolve cópias das entidades, na mesma ordem, com Insights sempre
// preenchido. Entidade sem linha recebe snapshot zerado.
func MergeInsights(entities []domain.AdEntity, rows []domain.InsightRow, level domain.EntityLevel) []domain.AdEntity {
	snapshots, _ := AggregateRows(rows, func(row *domain.InsightRow) string {
		return row.EntityID(level)
	})

	merged := make([]domain.AdEntity, len(entities))
	for i, entity := range entities {
		merged[i] = entity
		if snapshot, ok := snapshots[entity.ID]; ok {
			merged[i].Insights = snapshot
			continue
		}
		merged[i].Insights = domain.ZeroSnapshot()
	}

	return merged
}

// ZeroInsights é o caminho degradado: todas as entidades com snapshot zerado
func ZeroInsights(entities []domain.AdEntity) []domain.AdEntity {
	return MergeInsights(entities, nil, "")
}
