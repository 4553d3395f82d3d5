package security

import (
	"strings"
	"testing"
	"time"
	"qna_board/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	ts := NewTokenService([]byte("test-secret"), 7*24*time.Hour)

	token, err := ts.Issue("user-123", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt, time.Minute)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, time.Minute)
}

func TestVerifyTamperedSignature(t *testing.T) {
	ts := NewTokenService([]byte("test-secret"), time.Hour)

	token, err := ts.Issue("user-123", "alice@example.com")
	require.NoError(t, err)

	// Flip one character of the signature segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = ts.Verify(tampered)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := NewTokenService([]byte("secret-one"), time.Hour)
	verifier := NewTokenService([]byte("secret-two"), time.Hour)

	token, err := issuer.Issue("user-123", "alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestVerifyExpired(t *testing.T) {
	ts := NewTokenService([]byte("test-secret"), -time.Minute)

	token, err := ts.Issue("user-123", "alice@example.com")
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerifyNearExpiryBoundary(t *testing.T) {
	// A token with a comfortable remaining lifetime verifies; one just past
	// its expiry does not.
	valid := NewTokenService([]byte("test-secret"), time.Minute)
	token, err := valid.Issue("user-123", "alice@example.com")
	require.NoError(t, err)
	_, err = valid.Verify(token)
	assert.NoError(t, err)

	expired := NewTokenService([]byte("test-secret"), -time.Second)
	token, err = expired.Issue("user-123", "alice@example.com")
	require.NoError(t, err)
	_, err = expired.Verify(token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerifyGarbage(t *testing.T) {
	ts := NewTokenService([]byte("test-secret"), time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := ts.Verify(input)
		assert.ErrorIs(t, err, common.ErrTokenInvalid, "input %q", input)
	}
}

func TestVerifyMissingUserIDClaim(t *testing.T) {
	ts := NewTokenService([]byte("test-secret"), time.Hour)

	// Issue a structurally valid token without a user_id claim
	_, token, err := ts.JWTAuth().Encode(map[string]interface{}{
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}
