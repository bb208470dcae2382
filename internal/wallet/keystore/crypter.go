package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/term"
)

// ErrDecrypt marks corrupt or wrongly keyed ciphertext.
var ErrDecrypt = errors.New("keystore: decrypt failed")

// Crypter seals and opens wallet secrets with AES-256-GCM. Ciphertext is
// base64 over nonce||sealed.
type Crypter struct {
	aead cipher.AEAD
}

func NewCrypter(key []byte) (*Crypter, error) {
	if len(key) != 32 {
		return nil, errors.Errorf("keystore: key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "keystore: init cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "keystore: init GCM")
	}

	return &Crypter{aead: aead}, nil
}

func (c *Crypter) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "keystore: generate nonce")
	}

	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *Crypter) Decrypt(ciphertext string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, errors.Wrap(ErrDecrypt, "malformed base64")
	}
	if len(raw) < c.aead.NonceSize() {
		return nil, errors.Wrap(ErrDecrypt, "ciphertext too short")
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecrypt
	}

	return plaintext, nil
}

// DeriveKey stretches a passphrase into a 32 byte AES key via scrypt.
func DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, 1<<15, 8, 1, 32)
	if err != nil {
		return nil, errors.Wrap(err, "keystore: derive key")
	}

	return key, nil
}

// KeyFromConfig resolves the master key: a base64 key wins, otherwise a
// passphrase (prompted on the terminal when unset) is stretched with the
// configured salt.
func KeyFromConfig(masterKeyB64 string, passphrase string, saltHex string) ([]byte, error) {
	if masterKeyB64 != "" {
		key, err := base64.StdEncoding.DecodeString(masterKeyB64)
		if err != nil {
			return nil, errors.Wrap(err, "keystore: decode master key")
		}

		return key, nil
	}

	if passphrase == "" {
		os.Stderr.WriteString("Keystore passphrase: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		os.Stderr.WriteString("\n")
		if err != nil {
			return nil, errors.Wrap(err, "keystore: read passphrase")
		}
		passphrase = string(raw)
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, errors.Wrap(err, "keystore: decode scrypt salt")
	}

	return DeriveKey(passphrase, salt)
}
