// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Envelope parameters for newly encrypted snapshots. Decrypt honors whatever
// parameters the envelope itself carries.
const (
	pbkdf2Iterations = 600000
	pbkdf2KeyLength  = 32
	pbkdf2SaltLength = 32
)

// envelope is the on-disk form of an encrypted snapshot.
type envelope struct {
	Meta struct {
		KeyProvider  string `json:"key_provider"`
		Salt         string `json:"salt"`
		Iterations   int    `json:"iterations"`
		HashFunction string `json:"hash_function"`
		KeyLength    int    `json:"key_length"`
	} `json:"meta"`
	EncryptedData string `json:"encrypted_data"`
}

// Encrypt seals a plain snapshot document into an encrypted envelope using a
// key derived from the passphrase.
func Encrypt(doc []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase must not be empty")
	}

	salt := make([]byte, pbkdf2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, pbkdf2KeyLength, sha512.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Nonce is prepended to the ciphertext.
	sealed := aesGCM.Seal(nonce, nonce, doc, nil)

	var env envelope
	env.Meta.KeyProvider = "pbkdf2"
	env.Meta.Salt = base64.StdEncoding.EncodeToString(salt)
	env.Meta.Iterations = pbkdf2Iterations
	env.Meta.HashFunction = "sha512"
	env.Meta.KeyLength = pbkdf2KeyLength
	env.EncryptedData = base64.StdEncoding.EncodeToString(sealed)

	return json.Marshal(env)
}

// Decrypt opens an encrypted snapshot envelope using the provided passphrase
// and returns the plain document bytes.
func Decrypt(data []byte, passphrase string) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse envelope: %w", err)
	}

	if env.Meta.HashFunction != "" && env.Meta.HashFunction != "sha512" {
		return nil, fmt.Errorf("unsupported hash function: %s", env.Meta.HashFunction)
	}
	if env.Meta.Iterations <= 0 || env.Meta.KeyLength <= 0 {
		return nil, fmt.Errorf("invalid key derivation parameters")
	}

	salt, err := base64.StdEncoding.DecodeString(env.Meta.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	key := pbkdf2.Key([]byte(passphrase), salt, env.Meta.Iterations, env.Meta.KeyLength, sha512.New)

	return decryptPayload(env.EncryptedData, key)
}

func decryptPayload(encryptedData string, derivedKey []byte) ([]byte, error) {
	// Decode base64 data
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	// Create cipher directly with derived key
	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Extract nonce and ciphertext - no salt needed since key is already derived
	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	nonce := ciphertext[:nonceSize]
	encrypted := ciphertext[nonceSize:]

	// Decrypt
	plaintext, err := aesGCM.Open(nil, nonce, encrypted, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}
