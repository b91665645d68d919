package security

import (
	"testing"
	"time"

	"github.com/hilthontt/roomly/infrastructure/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, hasher.Compare(hash, "s3cret!"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong"), ErrPasswordMismatch)
}

func TestJWTManagerRoundTrip(t *testing.T) {
	clk := clock.Fake(time.Now().UTC())
	manager := NewJWTManager("unit-test-secret", time.Hour, clk)

	token, err := manager.Generate("user-1")
	require.NoError(t, err)

	userID, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWTManagerRejectsExpiredToken(t *testing.T) {
	clk := clock.Fake(time.Now().UTC())
	manager := NewJWTManager("unit-test-secret", time.Hour, clk)

	token, err := manager.Generate("user-1")
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerRejectsForeignSignature(t *testing.T) {
	clk := clock.Fake(time.Now().UTC())
	token, err := NewJWTManager("one-secret", time.Hour, clk).Generate("user-1")
	require.NoError(t, err)

	_, err = NewJWTManager("other-secret", time.Hour, clk).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTManager("one-secret", time.Hour, clk).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
