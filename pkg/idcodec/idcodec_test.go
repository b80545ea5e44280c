package idcodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func testIdentity() Identity {
	return Identity{
		BusinessDocument:     "211234567890",
		BusinessCountry:      858,
		BusinessDocumentType: 2,
		PersonDocument:       "41234567",
		PersonCountry:        858,
		PersonDocumentType:   1,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := New(testKey)
	require.NoError(t, err)

	token, err := codec.Encode(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), decoded)
}

func TestCodec_TokensAreOpaque(t *testing.T) {
	codec, err := New(testKey)
	require.NoError(t, err)

	token, err := codec.Encode(testIdentity())
	require.NoError(t, err)

	assert.False(t, strings.Contains(token, "211234567890"))
	assert.False(t, strings.Contains(token, "41234567"))
}

func TestCodec_NonDeterministicNonce(t *testing.T) {
	codec, err := New(testKey)
	require.NoError(t, err)

	first, err := codec.Encode(testIdentity())
	require.NoError(t, err)
	second, err := codec.Encode(testIdentity())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCodec_DecodeFailures(t *testing.T) {
	codec, err := New(testKey)
	require.NoError(t, err)

	// Not base64.
	_, err = codec.Decode("%%%")
	assert.ErrorIs(t, err, ErrDecode)

	// Too short to hold a nonce.
	_, err = codec.Decode("YWJj")
	assert.ErrorIs(t, err, ErrDecode)

	// Tampered ciphertext.
	token, err := codec.Encode(testIdentity())
	require.NoError(t, err)
	tampered := token[:len(token)-2] + "AA"
	_, err = codec.Decode(tampered)
	assert.ErrorIs(t, err, ErrDecode)

	// Wrong key.
	other, err := New(strings.Repeat("ff", 32))
	require.NoError(t, err)
	_, err = other.Decode(token)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestNew_InvalidKeys(t *testing.T) {
	_, err := New("not-hex")
	assert.Error(t, err)

	_, err = New("abcd") // too short
	assert.Error(t, err)
}
