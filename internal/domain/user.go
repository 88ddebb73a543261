package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type AppMetadata struct {
	Role string `json:"role"`
}

// Claims do JWT emitido pelo backend gerenciado de autenticação.
// O usuário é identificado pelo Subject.
type Claims struct {
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	AppMetadata AppMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}
