package metadomain

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	Objective       string `json:"objective"`
	DailyBudget     string `json:"daily_budget"`
	LifetimeBudget  string `json:"lifetime_budget"`
}

type AdSet struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	CampaignID      string `json:"campaign_id"`
	DailyBudget     string `json:"daily_budget"`
	LifetimeBudget  string `json:"lifetime_budget"`
}

type Ad struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	AdSetID         string `json:"adset_id"`
	CampaignID      string `json:"campaign_id"`
}

const (
	CampaignFields = "id,name,status,effective_status,objective,daily_budget,lifetime_budget"
	AdSetFields    = "id,name,status,effective_status,campaign_id,daily_budget,lifetime_budget"
	AdFields       = "id,name,status,effective_status,adset_id,campaign_id"
)

// StatusUpdateResponse é a resposta do POST /{id} com status
type StatusUpdateResponse struct {
	Success bool `json:"success"`
}
