package domain

import "github.com/shopspring/decimal"

// ConversionActionTypes define em ordem de prioridade os tipos de ação que contam como resultado
var ConversionActionTypes = []string{
	"purchase",
	"omni_purchase",
	"offsite_conversion.fb_pixel_purchase",
}

// Action é um par (action_type, value) das listas actions / action_values
type Action struct {
	ActionType string          `json:"action_type"`
	Value      decimal.Decimal `json:"value"`
}

// FindConversionAction retorna a primeira ação encontrada seguindo a ordem de
// ConversionActionTypes, não a ordem da lista recebida.
func FindConversionAction(actions []Action) (Action, bool) {
	if len(actions) == 0 {
		return Action{}, false
	}

	byType := make(map[string]Action, len(actions))
	for _, action := range actions {
		if _, exists := byType[action.ActionType]; !exists {
			byType[action.ActionType] = action
		}
	}

	for _, actionType := range ConversionActionTypes {
		if action, ok := byType[actionType]; ok {
			return action, true
		}
	}

	return Action{}, false
}

// InsightRow é uma linha de insight já convertida dos campos string da Graph API
type InsightRow struct {
	AccountID  string `json:"account_id,omitempty"`
	CampaignID string `json:"campaign_id,omitempty"`
	AdSetID    string `json:"adset_id,omitempty"`
	AdID       string `json:"ad_id,omitempty"`
	DateStart  string `json:"date_start,omitempty"`
	DateStop   string `json:"date_stop,omitempty"`

	// valores das dimensões de breakdown (age, gender, region...)
	Breakdowns map[string]string `json:"breakdowns,omitempty"`

	Spend        decimal.Decimal `json:"spend"`
	Impressions  int64           `json:"impressions"`
	Clicks       int64           `json:"clicks"`
	Reach        int64           `json:"reach"`
	Frequency    float64         `json:"frequency"`
	CPM          float64         `json:"cpm"`
	CPC          float64         `json:"cpc"`
	CTR          float64         `json:"ctr"`
	Actions      []Action        `json:"actions,omitempty"`
	ActionValues []Action        `json:"action_values,omitempty"`
}

// EntityID resolve o identificador da linha conforme o nível de reporte
func (r *InsightRow) EntityID(level EntityLevel) string {
	switch level {
	case LevelCampaign:
		return r.CampaignID
	case LevelAdSet:
		return r.AdSetID
	case LevelAd:
		return r.AdID
	default:
		return r.AccountID
	}
}

// Results é a contagem da ação de conversão da linha
func (r *InsightRow) Results() int64 {
	action, ok := FindConversionAction(r.Actions)
	if !ok {
		return 0
	}

	return action.Value.IntPart()
}

// PurchaseValue é o valor monetário da ação de conversão da linha
func (r *InsightRow) PurchaseValue() decimal.Decimal {
	action, ok := FindConversionAction(r.ActionValues)
	if !ok {
		return decimal.Zero
	}

	return action.Value
}
