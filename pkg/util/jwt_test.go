package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelToken_RoundTrip(t *testing.T) {
	token, err := GenerateChannelToken(40, "gateway", "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateChannelToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, 40, claims.ChannelID)
	assert.Equal(t, "gateway", claims.Operator)
}

func TestChannelToken_WrongSecret(t *testing.T) {
	token, err := GenerateChannelToken(40, "gateway", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateChannelToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChannelToken_Expired(t *testing.T) {
	token, err := GenerateChannelToken(40, "gateway", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateChannelToken(token, "secret")
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestChannelToken_Garbage(t *testing.T) {
	_, err := ValidateChannelToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
