// Package cryptox implements the secret cipher used to keep connection
// passwords encrypted at rest.
//
// Keys are derived from a passphrase and a persisted salt with
// PBKDF2-HMAC-SHA256. Secrets are sealed with AES-256-GCM and stored as a
// self-describing text token:
//
//	base64url( version(1) || nonce(12) || ciphertext+tag )
//
// The version byte is bound as additional authenticated data, so a token
// produced under one format cannot be replayed as another.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyIterations is the PBKDF2 work factor.
	KeyIterations = 480_000
	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32
	// SaltSize is the length of a generated salt.
	SaltSize = 16

	formatV1  byte = 0x01
	nonceSize      = 12
)

// DefaultPassphrase is used when the user has not supplied a master password.
// It keeps databases created by earlier releases readable; anyone holding the
// binary can derive the key, so it only protects against casual disclosure.
const DefaultPassphrase = "RDPManager_NoMasterPassword_DefaultKey"

var encoding = base64.RawURLEncoding

// EncryptionContext carries the session passphrase and the persisted salt.
type EncryptionContext struct {
	Passphrase string
	Salt       []byte
}

// GenerateSalt returns SaltSize bytes from a CSPRNG.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveKey stretches passphrase with salt into a KeySize key.
func DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, KeyIterations, KeySize, sha256.New)
}

// Cipher seals and opens secrets under one derived key. Deriving is the
// expensive step, so callers that handle several secrets should keep one
// Cipher for the session.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives the key for ec and prepares an AES-GCM instance.
func NewCipher(ec EncryptionContext) (*Cipher, error) {
	if len(ec.Salt) == 0 {
		return nil, fmt.Errorf("empty salt")
	}
	key := DeriveKey(ec.Passphrase, ec.Salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := common.GenerateRandByteArray(nonceSize)

	out := make([]byte, 0, 1+nonceSize+len(plaintext)+c.aead.Overhead())
	out = append(out, formatV1)
	out = append(out, nonce...)
	out = c.aead.Seal(out, nonce, []byte(plaintext), []byte{formatV1})

	return encoding.EncodeToString(out), nil
}

// Decrypt opens a token produced by Encrypt. Any malformed, truncated or
// tampered token, and any token sealed under another key, yields an error
// wrapping common.ErrDecryption.
func (c *Cipher) Decrypt(token string) (string, error) {
	raw, err := encoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: malformed token: %v", common.ErrDecryption, err)
	}
	if len(raw) < 1+nonceSize+c.aead.Overhead() {
		return "", fmt.Errorf("%w: token too short", common.ErrDecryption)
	}
	if raw[0] != formatV1 {
		return "", fmt.Errorf("%w: unsupported token version %d", common.ErrDecryption, raw[0])
	}

	nonce := raw[1 : 1+nonceSize]
	plaintext, err := c.aead.Open(nil, nonce, raw[1+nonceSize:], raw[:1])
	if err != nil {
		return "", fmt.Errorf("%w: wrong passphrase or corrupt data", common.ErrDecryption)
	}
	return string(plaintext), nil
}

// Encrypt is a one-shot helper deriving the key for every call.
func Encrypt(plaintext string, ec EncryptionContext) (string, error) {
	c, err := NewCipher(ec)
	if err != nil {
		return "", err
	}
	return c.Encrypt(plaintext)
}

// Decrypt is a one-shot helper deriving the key for every call.
func Decrypt(token string, ec EncryptionContext) (string, error) {
	c, err := NewCipher(ec)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return c.Decrypt(token)
}
