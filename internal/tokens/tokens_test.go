package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer([]byte("secret"), 0)

	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.User.ID)
	assert.NotNil(t, claims.IssuedAt)
	assert.Nil(t, claims.ExpiresAt)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := NewIssuer([]byte("secret"), 0).Issue("user-1")
	require.NoError(t, err)

	_, err = Parse(tok, []byte("other"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := Parse(raw, []byte("secret"))
		require.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestParse_Expired(t *testing.T) {
	iss := NewIssuer([]byte("secret"), time.Minute)
	iss.Now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	_, err = iss.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	claims := SessionClaims{User: SessionUser{ID: "user-1"}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = Parse(tok, []byte("secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_MissingUser(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"foo": "bar"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = Parse(tok, []byte("secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_EmptyUser(t *testing.T) {
	_, err := NewIssuer([]byte("secret"), 0).Issue("")
	require.Error(t, err)
}
