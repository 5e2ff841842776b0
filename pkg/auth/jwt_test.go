package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key",
		Issuer:     "pagos-servicing",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{RoleOperator, RoleCollector})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have three segments")

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "pagos-servicing", claims.Issuer)
	assert.True(t, claims.HasRole(RoleOperator))
	assert.True(t, claims.HasRole(RoleCollector))
	assert.False(t, claims.HasRole(RoleAdmin))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken(uuid.New(), []string{RoleOperator})
	require.NoError(t, err)

	other, err := NewJWTService(JWTConfig{Secret: "different-secret", Issuer: "pagos-servicing"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{
		Secret:     "shared-secret",
		Issuer:     "someone-else",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	validator, err := NewJWTService(JWTConfig{Secret: "shared-secret", Issuer: "pagos-servicing"})
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid issuer")
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key",
		Issuer:     "pagos-servicing",
		Expiration: -time.Minute,
	})
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
