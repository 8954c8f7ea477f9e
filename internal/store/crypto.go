package store

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"

	"github.com/duebook/duebook/internal/common"
)

// envelopePrefix marks an encrypted stored value. Values without the prefix
// are plaintext, so turning encryption on does not invalidate an existing
// unencrypted ledger.
const envelopePrefix = "enc:v1:"

const (
	scryptN    = 1 << 15
	scryptR    = 8
	scryptP    = 1
	saltSize   = 16
	aesKeySize = 32
)

// Sealer encrypts and decrypts stored ledger values with a passphrase-derived
// key. A nil *Sealer passes values through unchanged.
type Sealer struct {
	passphrase string
}

// NewSealer creates a Sealer for the given passphrase. An empty passphrase
// yields nil, meaning no encryption.
func NewSealer(passphrase string) *Sealer {
	if passphrase == "" {
		return nil
	}
	return &Sealer{passphrase: passphrase}
}

// Seal encrypts value into an enc:v1 envelope: base64(salt | nonce | ciphertext).
func (s *Sealer) Seal(value []byte) (string, error) {
	if s == nil {
		return string(value), nil
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := s.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, value, nil)
	payload := append(append(salt, nonce...), sealed...)
	return envelopePrefix + base64.StdEncoding.EncodeToString(payload), nil
}

// Open decrypts an enc:v1 envelope. Plaintext values pass through so a
// ledger written before encryption was enabled still loads.
func (s *Sealer) Open(value string) ([]byte, error) {
	if !strings.HasPrefix(value, envelopePrefix) {
		return []byte(value), nil
	}
	if s == nil {
		return nil, fmt.Errorf("%w: ledger is encrypted but no passphrase is configured", common.ErrDecryptFailed)
	}

	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, envelopePrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryptFailed, err)
	}
	if len(payload) < saltSize {
		return nil, common.ErrDecryptFailed
	}

	salt, rest := payload[:saltSize], payload[saltSize:]
	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, common.ErrDecryptFailed
	}

	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryptFailed, err)
	}
	return plaintext, nil
}

func (s *Sealer) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(s.passphrase), salt, scryptN, scryptR, scryptP, aesKeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return gcm, nil
}
