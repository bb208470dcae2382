package keystore

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrSecretNotFound is returned when no encrypted secret exists for the
// requested (walletID, currency, chain) triple.
var ErrSecretNotFound = errors.New("keystore: wallet secret not found")

// Secret is the decrypted key material of a custodial wallet.
type Secret struct {
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
	Mnemonic   string `json:"mnemonic,omitempty"`
}

// Service loads and decrypts custodial wallet secrets.
type Service interface {
	GetSecret(ctx context.Context, walletID string, currency string, chain string) (*Secret, error)
	SaveSecret(ctx context.Context, walletID string, currency string, chain string, secret *Secret) error
}

type service struct {
	db      *sql.DB
	crypter *Crypter
}

//nolint:ireturn
func NewService(db *sql.DB, crypter *Crypter) Service {
	return &service{
		db:      db,
		crypter: crypter,
	}
}

func (s *service) GetSecret(ctx context.Context, walletID string, currency string, chain string) (*Secret, error) {
	var ciphertext string
	err := s.db.QueryRowContext(ctx,
		`SELECT encrypted_secret FROM wallet_secrets WHERE wallet_id = $1 AND currency = $2 AND chain = $3`,
		walletID, currency, chain,
	).Scan(&ciphertext)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrSecretNotFound, "wallet %s (%s/%s)", walletID, currency, chain)
		}

		return nil, errors.Wrap(err, "failed to query wallet secret")
	}

	plaintext, err := s.crypter.Decrypt(ciphertext)
	if err != nil {
		return nil, err
	}

	secret := &Secret{}
	if err := json.Unmarshal(plaintext, secret); err != nil {
		return nil, errors.Wrap(ErrDecrypt, "secret payload is not valid JSON")
	}
	if secret.PrivateKey == "" {
		return nil, errors.Wrap(ErrDecrypt, "secret payload has no private key")
	}

	return secret, nil
}

func (s *service) SaveSecret(ctx context.Context, walletID string, currency string, chain string, secret *Secret) error {
	plaintext, err := json.Marshal(secret)
	if err != nil {
		return errors.Wrap(err, "failed to marshal wallet secret")
	}

	ciphertext, err := s.crypter.Encrypt(plaintext)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO wallet_secrets (wallet_id, currency, chain, encrypted_secret)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (wallet_id, currency, chain) DO UPDATE SET encrypted_secret = EXCLUDED.encrypted_secret, updated_at = now()`,
		walletID, currency, chain, ciphertext,
	)
	if err != nil {
		return errors.Wrap(err, "failed to persist wallet secret")
	}

	return nil
}
