package domain

import "strings"

// AccountIDPrefix é o prefixo literal que a Graph API exige nos IDs de conta de anúncio
const AccountIDPrefix = "act_"

// NormalizeAccountID garante o prefixo act_. Idempotente.
func NormalizeAccountID(accountID string) string {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" || strings.HasPrefix(accountID, AccountIDPrefix) {
		return accountID
	}

	return AccountIDPrefix + accountID
}

// StripAccountPrefix remove o prefixo act_, quando presente
func StripAccountPrefix(accountID string) string {
	return strings.TrimPrefix(strings.TrimSpace(accountID), AccountIDPrefix)
}

// AdAccount é uma conta de anúncio visível para o token do usuário
type AdAccount struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status"`
	Currency      string `json:"currency"`
	TimezoneName  string `json:"timezone_name"`
	BusinessID    string `json:"business_id,omitempty"`
	BusinessName  string `json:"business_name,omitempty"`
}

// IsActive segue o código de status da Meta (1 = ACTIVE)
func (a *AdAccount) IsActive() bool {
	return a != nil && a.AccountStatus == 1
}
