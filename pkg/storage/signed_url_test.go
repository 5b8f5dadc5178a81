package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("rep-1", "payments/2024-02.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	id, path, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "rep-1", id)
	assert.Equal(t, "payments/2024-02.csv", path)
}

func TestSignedURLSignerExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)
	start := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return start }
	token, _, err := signer.Generate("rep-1", "payments.csv")
	require.NoError(t, err)

	signer.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, _, err = signer.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSignedURLSignerRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("rep-1", "payments.csv")
	require.NoError(t, err)

	other := NewSignedURLSigner("other", time.Hour)
	_, _, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = signer.Parse("rep-1.123")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSignedURLSignerRequiresSecret(t *testing.T) {
	_, _, err := NewSignedURLSigner("", time.Hour).Generate("rep-1", "a.csv")
	assert.Error(t, err)
}
