package authenticating

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/config"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

func newTestService(t *testing.T) Authenticator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Auth.Secret = "segredo-de-teste"
	cfg.Auth.TokenTTLHours = 1
	cfg.Auth.Users = fmt.Sprintf(
		"admin@painel.com.br:Administrador:%s:admin;gerente@painel.com.br:Gerente Sul:%s:gerente",
		hash, hash,
	)

	return NewService(cfg)
}

func TestService_LoginUser(t *testing.T) {
	service := newTestService(t)

	t.Run("Login com credenciais válidas emite token", func(t *testing.T) {
		token, err := service.LoginUser("admin@painel.com.br", "senha-forte")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Email é normalizado antes da busca", func(t *testing.T) {
		token, err := service.LoginUser("  Admin@Painel.com.br ", "senha-forte")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Senha incorreta", func(t *testing.T) {
		_, err := service.LoginUser("admin@painel.com.br", "senha-errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("Usuário desconhecido", func(t *testing.T) {
		_, err := service.LoginUser("ninguem@painel.com.br", "senha-forte")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Campos obrigatórios ausentes", func(t *testing.T) {
		_, err := service.LoginUser("", "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t)

	t.Run("Token emitido pelo próprio serviço é válido", func(t *testing.T) {
		token, err := service.LoginUser("gerente@painel.com.br", "senha-forte")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "gerente@painel.com.br", claims.Email)
		assert.Equal(t, domain.RoleGerente, claims.Role)
	})

	t.Run("Token adulterado é rejeitado", func(t *testing.T) {
		token, err := service.LoginUser("gerente@painel.com.br", "senha-forte")
		require.NoError(t, err)

		_, err = service.ValidateToken(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token assinado com outro segredo é rejeitado", func(t *testing.T) {
		other := newTestService(t)
		token, err := other.LoginUser("gerente@painel.com.br", "senha-forte")
		require.NoError(t, err)

		cfg := &config.Config{}
		cfg.Auth.Secret = "outro-segredo"
		service := NewService(cfg)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestParseUsers(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("x"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("Entradas malformadas são ignoradas", func(t *testing.T) {
		users := parseUsers(fmt.Sprintf("so-email;;a@b.com:Nome:%s:admin", hash))

		require.Len(t, users, 1)
		assert.Equal(t, domain.RoleAdmin, users["a@b.com"].Role)
	})

	t.Run("Papel desconhecido degrada para gerente", func(t *testing.T) {
		users := parseUsers(fmt.Sprintf("a@b.com:Nome:%s:diretor", hash))

		require.Len(t, users, 1)
		assert.Equal(t, domain.RoleGerente, users["a@b.com"].Role)
	})
}

func TestService_ListUsers(t *testing.T) {
	service := newTestService(t)

	users := service.ListUsers()
	require.Len(t, users, 2)

	for _, user := range users {
		assert.Empty(t, user.PasswordHash)
		assert.True(t, user.Active)
	}
}
