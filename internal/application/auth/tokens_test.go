package auth

import (
	"testing"
	"time"

	"gfg-stable-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	u := &domain.User{ID: 7, Email: "a@b.com", RoleID: 1, RoleName: "admin"}

	tok, exp, err := m.Generate(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.RoleName)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_UniquePerIssue(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	u := &domain.User{ID: 1}
	a, _, _ := m.Generate(u)
	b, _, _ := m.Generate(u)
	assert.NotEqual(t, HashToken(a), HashToken(b))
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("other", time.Hour)
	tok, _, err := other.Generate(&domain.User{ID: 1})
	require.NoError(t, err)
	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, errTokenInvalid)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	s, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Validate(s)
	assert.ErrorIs(t, err, errTokenInvalid)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1})
	s, err = none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Validate(s)
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	assert.Len(t, HashToken("x"), 64)
	assert.Equal(t, HashToken("x"), HashToken("x"))
}

func TestNewTokenManager_DefaultDuration(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewTokenManager("s", 0).Duration())
}
