package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ledgerline/crm-intelligence-api/internal/config"
	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "segredo-de-teste"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims domain.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func claimsFor(tenantID string, expiresIn time.Duration) domain.Claims {
	return domain.Claims{
		UserEmail:  "ana@example.com",
		TenantID:   tenantID,
		UserRoleID: 2,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func newTestService(secret string) Authenticator {
	return NewService(&config.Config{Auth: config.Auth{Secret: secret}})
}

func TestValidateToken(t *testing.T) {
	service := newTestService(testSecret)

	t.Run("token válido", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("tenant-a", time.Hour))

		claims, err := service.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, "tenant-a", claims.TenantID)
		assert.Equal(t, "user-1", claims.UserID())
		assert.Equal(t, 2, claims.UserRoleID)
	})

	t.Run("token expirado", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("tenant-a", -time.Hour))

		_, err := service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("assinatura com outro segredo", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("outro"), claimsFor("tenant-a", time.Hour))

		_, err := service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("algoritmo none recusado", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claimsFor("tenant-a", time.Hour))

		_, err := service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token sem tenant", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("", time.Hour))

		_, err := service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrMissingTenant)
	})

	t.Run("token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("abc.def")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestValidateToken_SemSegredo(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("tenant-a", time.Hour))

	_, err := newTestService("").ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
