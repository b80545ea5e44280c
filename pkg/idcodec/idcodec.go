// Package idcodec seals the internal identity tuple into the opaque
// external id exchanged with the channels. Channels never see document
// numbers; they only carry the sealed token back on subsequent calls.
package idcodec

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrDecode is returned for any token that cannot be opened: wrong key,
// truncated payload, tampered ciphertext.
var ErrDecode = errors.New("cannot decode external id")

// Identity is the key for every core-store operation on a unipersonal.
type Identity struct {
	BusinessDocument     string `json:"bd"`
	BusinessCountry      int    `json:"bc"`
	BusinessDocumentType int    `json:"bt"`
	PersonDocument       string `json:"pd"`
	PersonCountry        int    `json:"pc"`
	PersonDocumentType   int    `json:"pt"`
}

// Codec seals and opens external ids with a ChaCha20-Poly1305 key.
type Codec struct {
	key []byte
}

// New builds a codec from a hex-encoded 32-byte key.
func New(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("id codec key is not valid hex: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("id codec key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &Codec{key: key}, nil
}

// Encode seals the identity into an opaque URL-safe token.
func (c *Codec) Encode(id Identity) (string, error) {
	plaintext, err := json.Marshal(id)
	if err != nil {
		return "", err
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode opens an external token back into the identity tuple.
func (c *Codec) Decode(token string) (Identity, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Identity{}, ErrDecode
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return Identity{}, err
	}

	if len(sealed) < aead.NonceSize() {
		return Identity{}, ErrDecode
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Identity{}, ErrDecode
	}

	var id Identity
	if err := json.Unmarshal(plaintext, &id); err != nil {
		return Identity{}, ErrDecode
	}
	return id, nil
}
