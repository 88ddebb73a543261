package metadomain

type Business struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AdAccount struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	Name          string    `json:"name"`
	AccountStatus int       `json:"account_status"`
	Currency      string    `json:"currency"`
	TimezoneName  string    `json:"timezone_name"`
	Business      *Business `json:"business,omitempty"`
}

const AdAccountFields = "id,account_id,name,account_status,currency,timezone_name,business"
