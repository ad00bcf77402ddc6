// Package authenticating autentica os usuários do painel, provisionados por
// configuração, e emite/valida os tokens JWT de acesso
package authenticating

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/config"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	errorcodes "github.com/leonaardoschneider1/painel-vendas-api/pkg/apiErrors"
)

type Authenticator interface {
	LoginUser(email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ListUsers() []*domain.User
}

type Service struct {
	cfg   *config.Config
	users map[string]*domain.User
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg:   cfg,
		users: parseUsers(cfg.Auth.Users),
	}
}

// parseUsers interpreta a lista de usuários da configuração, no formato
// email:nome:hash_bcrypt:papel separado por ponto e vírgula. Entradas
// malformadas são ignoradas com aviso.
func parseUsers(raw string) map[string]*domain.User {
	users := map[string]*domain.User{}

	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 4)
		if len(parts) != 4 {
			logrus.Warn("auth: entrada de usuário malformada na configuração ignorada")
			continue
		}

		email := handleEmail(parts[0])
		role := strings.TrimSpace(parts[3])
		if role != domain.RoleAdmin && role != domain.RoleGerente {
			role = domain.RoleGerente
		}

		users[email] = &domain.User{
			Email:        email,
			Name:         strings.TrimSpace(parts[1]),
			PasswordHash: parts[2],
			Role:         role,
			Active:       true,
		}
	}

	return users
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, errorcodes.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	user, exists := s.users[handleEmail(email)]
	if !exists {
		return "", NewAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return "", NewAuthError(ErrUserDisabled, errorcodes.ErrUserDisabled, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewAuthError(ErrInvalidCredentials, errorcodes.ErrInvalidCredentials, "Senha incorreta")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewAuthError(err, errorcodes.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

// ListUsers devolve os usuários provisionados, sem os hashes de senha
func (s *Service) ListUsers() []*domain.User {
	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, &domain.User{
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
			Active: user.Active,
		})
	}
	return users
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	claims := domain.Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
