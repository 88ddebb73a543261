package domain

import "time"

// Connection liga um usuário a uma conta de anúncio da Meta.
// AccessToken só existe em memória; no banco fica cifrado.
type Connection struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	AccountID   string    `json:"account_id"`
	AccountName string    `json:"account_name"`
	AccessToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateConnectionRequest struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	AccessToken string `json:"access_token"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
