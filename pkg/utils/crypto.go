package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrDecryptSecret = errors.New("could not decrypt secret")

// EncryptSecret cifra com secretbox; a chave é o sha256 de secretKey e o nonce vai na frente
func EncryptSecret(plaintext, secretKey string) (string, error) {
	key := deriveKey(secretKey)

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func DecryptSecret(encoded, secretKey string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrDecryptSecret
	}

	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrDecryptSecret
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	key := deriveKey(secretKey)
	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &key)
	if !ok {
		return "", ErrDecryptSecret
	}

	return string(plaintext), nil
}

func deriveKey(secretKey string) [32]byte {
	return sha256.Sum256([]byte(secretKey))
}
