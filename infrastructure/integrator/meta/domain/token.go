package metadomain

import "slices"

// TokenInfo é o campo data da resposta do /debug_token
type TokenInfo struct {
	AppID     string   `json:"app_id"`
	UserID    string   `json:"user_id"`
	IsValid   bool     `json:"is_valid"`
	ExpiresAt int64    `json:"expires_at"`
	Scopes    []string `json:"scopes"`
}

// HasScope considera válido quando a Meta não informa escopos (fallback via /me)
func (t *TokenInfo) HasScope(scope string) bool {
	if len(t.Scopes) == 0 {
		return true
	}
	return slices.Contains(t.Scopes, scope)
}
