// Package secrets resolves upstream API credentials. Environment variables
// win (a .env file is loaded at startup); the OS keychain is the fallback
// so keys never have to live in the config file.
package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups the engine's secrets in the OS keychain.
	KeyringService = "jobforge"

	EnvAdzunaAppID  = "ADZUNA_APP_ID"
	EnvAdzunaAppKey = "ADZUNA_APP_KEY"
	EnvJoobleAPIKey = "JOOBLE_API_KEY"
	EnvRapidAPIKey  = "RAPIDAPI_KEY"
)

// Credentials holds every key the adapters can use. Empty fields simply
// disable the adapter that needs them.
type Credentials struct {
	AdzunaAppID  string
	AdzunaAppKey string
	JoobleAPIKey string
	RapidAPIKey  string
}

func LoadCredentials() Credentials {
	return Credentials{
		AdzunaAppID:  APIKey(EnvAdzunaAppID),
		AdzunaAppKey: APIKey(EnvAdzunaAppKey),
		JoobleAPIKey: APIKey(EnvJoobleAPIKey),
		RapidAPIKey:  APIKey(EnvRapidAPIKey),
	}
}

// APIKey looks a credential up by its environment variable name; the same
// name doubles as the keychain account.
func APIKey(name string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if v, err := keyring.Get(KeyringService, name); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

func SetAPIKey(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("credential name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("credential value is empty")
	}
	return keyring.Set(KeyringService, name, value)
}

func DeleteAPIKey(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("credential name is empty")
	}
	return keyring.Delete(KeyringService, name)
}
