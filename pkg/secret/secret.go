// Package secret cifra credenciais guardadas no banco (refresh tokens da plataforma de anúncios).
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var (
	ErrEmptyKey      = errors.New("secret key is required")
	ErrInvalidSealed = errors.New("invalid sealed value")
)

type Box struct {
	key [32]byte
}

// NewBox deriva a chave de 32 bytes a partir do SECRET_KEY configurado
func NewBox(secretKey string) (*Box, error) {
	if secretKey == "" {
		return nil, ErrEmptyKey
	}

	return &Box{key: sha256.Sum256([]byte(secretKey))}, nil
}

// Seal cifra o texto e devolve nonce+ciphertext em base64
func (b *Box) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}

	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (b *Box) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidSealed
	}

	if len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrInvalidSealed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrInvalidSealed
	}

	return string(plain), nil
}
