package domain

import "github.com/golang-jwt/jwt/v5"

// Papéis de acesso do painel
const (
	RoleAdmin   = "admin"
	RoleGerente = "gerente"
)

// User é um usuário provisionado por configuração (email, hash bcrypt, papel)
type User struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
}

// Claims são as claims do token JWT emitido no login
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
