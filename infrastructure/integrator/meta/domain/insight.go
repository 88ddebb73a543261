package metadomain

// Action é o formato cru de actions / action_values, valor numérico em string
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é uma linha do endpoint /insights com os campos como a Graph API devolve
type Insight struct {
	AccountID    string   `json:"account_id"`
	AccountName  string   `json:"account_name"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	AdSetID      string   `json:"adset_id"`
	AdSetName    string   `json:"adset_name"`
	AdID         string   `json:"ad_id"`
	AdName       string   `json:"ad_name"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Reach        string   `json:"reach"`
	Frequency    string   `json:"frequency"`
	CPM          string   `json:"cpm"`
	CPC          string   `json:"cpc"`
	CTR          string   `json:"ctr"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`

	// dimensões de breakdown possíveis
	Age               string `json:"age,omitempty"`
	Gender            string `json:"gender,omitempty"`
	Country           string `json:"country,omitempty"`
	Region            string `json:"region,omitempty"`
	PublisherPlatform string `json:"publisher_platform,omitempty"`
	PlatformPosition  string `json:"platform_position,omitempty"`
	DevicePlatform    string `json:"device_platform,omitempty"`
}

// BreakdownValues devolve apenas as dimensões preenchidas
func (i *Insight) BreakdownValues() map[string]string {
	values := map[string]string{
		"age":                i.Age,
		"gender":             i.Gender,
		"country":            i.Country,
		"region":             i.Region,
		"publisher_platform": i.PublisherPlatform,
		"platform_position":  i.PlatformPosition,
		"device_platform":    i.DevicePlatform,
	}

	for k, v := range values {
		if v == "" {
			delete(values, k)
		}
	}

	if len(values) == 0 {
		return nil
	}

	return values
}

// InsightFields são os campos pedidos ao endpoint de insights
const InsightFields = "account_id,account_name,campaign_id,campaign_name,adset_id,adset_name,ad_id,ad_name," +
	"spend,impressions,clicks,reach,frequency,cpm,cpc,ctr,actions,action_values"
