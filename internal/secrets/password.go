package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"leadscout-engine/internal/config"
)

const (
	// "Service" groups the app's secrets in the OS keychain.
	KeyringService = "leadscout"
)

func get(account string, what string) (string, error) {
	if strings.TrimSpace(account) != "" {
		v, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(v) != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%s not found in keychain", what)
}

func set(account, value, what string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New(what + " is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func del(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// Mailbox IMAP password.

func GetIMAPPassword(account string) (string, error) { return get(account, "IMAP password") }

func SetIMAPPassword(account, password string) error { return set(account, password, "password") }

func DeleteIMAPPassword(account string) error { return del(account) }

func IMAPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"leadscout:imap:%s@%s",
		cfg.Sources.Mailbox.Username,
		cfg.Sources.Mailbox.IMAPHost,
	)
}

// Remote source API token.

func GetRemoteToken(account string) (string, error) { return get(account, "remote source token") }

func SetRemoteToken(account, token string) error { return set(account, token, "token") }

func DeleteRemoteToken(account string) error { return del(account) }

func RemoteKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"leadscout:remote:%s@%s",
		cfg.Sources.Remote.Username,
		cfg.Sources.Remote.BaseURL,
	)
}
