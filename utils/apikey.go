package utils

import (
	"FlowVault/config"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const ApiKeyPrefix = "fv-"

// GenerateApiKey returns a fresh raw API key. The "fv-" marker lets
// the auth middleware tell keys apart from session tokens.
func GenerateApiKey() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return ApiKeyPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// KeyDisplayPrefix returns the shortened form shown in listings,
// first four and last four characters of the key body.
func KeyDisplayPrefix(rawKey string) string {
	body := strings.TrimPrefix(rawKey, ApiKeyPrefix)
	if len(body) <= 8 {
		return ApiKeyPrefix + body
	}
	return fmt.Sprintf("%s%s...%s", ApiKeyPrefix, body[:4], body[len(body)-4:])
}

// KeyDigest returns a cache-safe digest of the raw key.
func KeyDigest(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

func encryptionKey() ([]byte, error) {
	secret := config.AppConfig.APIKeyEncryptionKey
	if len(secret) < 32 {
		return nil, errors.New("encryption secret too short")
	}
	return []byte(secret[:32]), nil
}

// EncryptApiKey encrypts a raw key with AES-256-CBC. The output is
// the hex IV and hex ciphertext joined by a colon.
func EncryptApiKey(rawKey string) (string, error) {
	key, err := encryptionKey()
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	plain := pkcs7Pad([]byte(rawKey), aes.BlockSize)
	encrypted := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(encrypted, plain)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(encrypted), nil
}

// DecryptApiKey reverses EncryptApiKey.
func DecryptApiKey(stored string) (string, error) {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return "", errors.New("malformed encrypted key")
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", errors.New("malformed encrypted key iv")
	}
	encrypted, err := hex.DecodeString(parts[1])
	if err != nil || len(encrypted) == 0 || len(encrypted)%aes.BlockSize != 0 {
		return "", errors.New("malformed encrypted key body")
	}

	key, keyErr := encryptionKey()
	if keyErr != nil {
		return "", keyErr
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	plain := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, encrypted)
	return string(pkcs7Unpad(plain)), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func pkcs7Unpad(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > len(data) {
		return data
	}
	return data[:len(data)-padding]
}

// ExtractBearerToken pulls the bearer credential out of the
// Authorization header.
func ExtractBearerToken(authHeader string) (string, bool) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// IsApiKey reports whether a bearer credential looks like an API key
// rather than a session token.
func IsApiKey(token string) bool {
	return strings.HasPrefix(token, ApiKeyPrefix)
}
