package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as informações do token emitido pelo backend hospedado.
// O tenant vem da sessão do usuário e delimita todos os agregados.
type Claims struct {
	UserEmail  string `json:"email"`
	TenantID   string `json:"tenant_id"`
	UserRoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}

// UserID retorna o identificador do usuário (claim "sub")
func (c *Claims) UserID() string {
	return c.Subject
}
