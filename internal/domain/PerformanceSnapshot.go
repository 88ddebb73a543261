package domain

// PerformanceSnapshot são as métricas consolidadas de uma entidade no período
type PerformanceSnapshot struct {
	Spend         float64 `json:"spend"`
	Impressions   int64   `json:"impressions"`
	Clicks        int64   `json:"clicks"`
	Reach         int64   `json:"reach"`
	Frequency     float64 `json:"frequency"`
	CPM           float64 `json:"cpm"`
	CPC           float64 `json:"cpc"`
	CTR           float64 `json:"ctr"`
	Results       int64   `json:"results"`
	PurchaseValue float64 `json:"purchase_value"`
	CostPerResult float64 `json:"cost_per_result"`
	ROAS          float64 `json:"roas"`
}

// ZeroSnapshot é atribuído às entidades sem linha de insight
func ZeroSnapshot() *PerformanceSnapshot {
	return &PerformanceSnapshot{}
}

func (p *PerformanceSnapshot) IsEmpty() bool {
	if p == nil {
		return true
	}

	return p.Impressions == 0 && p.Reach == 0 && p.Results == 0 && p.Spend == 0
}

// DailyPerformance é um ponto da série diária usada nos gráficos
type DailyPerformance struct {
	Date string `json:"date"`
	PerformanceSnapshot
}
