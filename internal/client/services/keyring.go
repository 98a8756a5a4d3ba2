package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/rdpmanager/internal/client/repositories/settings"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/dmitrijs2005/rdpmanager/internal/cryptox"
	"github.com/dmitrijs2005/rdpmanager/internal/logging"
)

// KeyringService owns the process-wide encryption salt and turns a
// passphrase into an EncryptionContext.
//
// The salt is generated once, on first use, and persisted in the settings
// table. It never changes afterwards: rotating it would make every stored
// ciphertext unreadable.
type KeyringService interface {
	// Context returns the EncryptionContext for passphrase. An empty
	// passphrase selects cryptox.DefaultPassphrase.
	Context(ctx context.Context, passphrase string) (cryptox.EncryptionContext, error)
	// Seal encrypts a plaintext password. An empty password stays empty.
	Seal(ec cryptox.EncryptionContext, password string) (string, error)
	// Reveal decrypts a stored password. An empty token reveals "".
	Reveal(ec cryptox.EncryptionContext, token string) (string, error)
}

type keyringService struct {
	settings settings.Repository
	logger   logging.Logger
}

func NewKeyringService(repo settings.Repository, logger logging.Logger) KeyringService {
	return &keyringService{settings: repo, logger: logger}
}

func (k *keyringService) salt(ctx context.Context) ([]byte, error) {
	v, ok, err := k.settings.Get(ctx, common.SaltSettingKey)
	if err != nil {
		return nil, fmt.Errorf("load salt: %w", err)
	}
	if ok {
		salt, err := base64.StdEncoding.DecodeString(v)
		if err != nil || len(salt) == 0 {
			return nil, fmt.Errorf("stored salt is corrupt: %w", common.ErrDecryption)
		}
		return salt, nil
	}

	salt := cryptox.GenerateSalt()
	if err := k.settings.Set(ctx, common.SaltSettingKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, fmt.Errorf("persist salt: %w", err)
	}
	k.logger.Info(ctx, "generated new encryption salt")
	return salt, nil
}

func (k *keyringService) Context(ctx context.Context, passphrase string) (cryptox.EncryptionContext, error) {
	salt, err := k.salt(ctx)
	if err != nil {
		return cryptox.EncryptionContext{}, err
	}
	if passphrase == "" {
		k.logger.Warn(ctx, "no master password set, using the built-in default passphrase")
		passphrase = cryptox.DefaultPassphrase
	}
	return cryptox.EncryptionContext{Passphrase: passphrase, Salt: salt}, nil
}

func (k *keyringService) Seal(ec cryptox.EncryptionContext, password string) (string, error) {
	if password == "" {
		return "", nil
	}
	return cryptox.Encrypt(password, ec)
}

func (k *keyringService) Reveal(ec cryptox.EncryptionContext, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	return cryptox.Decrypt(token, ec)
}
