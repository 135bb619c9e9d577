// Package keystore stores the shared OpenAI API key. The OS keyring is the
// primary store; a .env file in the hub directory is kept as a fallback for
// systems without a usable keyring and for the tools themselves, which read
// OPENAI_API_KEY from the environment or that file.
package keystore

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"

	"github.com/prodhub-io/prodhub/internal/config"
)

const (
	keyringService = "prodhub"
	keyringUser    = "openai_api_key"

	// EnvVar is the variable name the tools read.
	EnvVar = "OPENAI_API_KEY"
)

// ErrNotFound is returned when no key is stored anywhere.
var ErrNotFound = errors.New("no API key found in keyring or .env file")

// Load returns the stored API key, trying the keyring first and the .env
// fallback second.
func Load() (string, error) {
	if key, err := keyring.Get(keyringService, keyringUser); err == nil && key != "" {
		return key, nil
	}
	return loadFromEnvFile()
}

// Save writes the key to the keyring and mirrors it to the .env fallback.
// A keyring failure is not fatal as long as the .env write succeeds.
func Save(key string) error {
	if err := Validate(key); err != nil {
		return err
	}

	keyringErr := keyring.Set(keyringService, keyringUser, key)
	envErr := saveToEnvFile(key)
	if keyringErr != nil && envErr != nil {
		return fmt.Errorf("failed to save API key: %w", keyringErr)
	}
	return nil
}

// Delete removes the key from both stores.
func Delete() error {
	keyringErr := keyring.Delete(keyringService, keyringUser)
	if keyringErr == keyring.ErrNotFound {
		keyringErr = nil
	}

	path, err := config.GlobalEnvFile()
	if err != nil {
		return err
	}
	if config.FileExists(path) {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return keyringErr
}

// Has reports whether a key is stored.
func Has() bool {
	_, err := Load()
	return err == nil
}

// Masked returns a display preview of the stored key, or "" when none is
// stored.
func Masked() string {
	key, err := Load()
	if err != nil {
		return ""
	}
	return Mask(key)
}

// Mask shortens a key for display. Short keys are hidden entirely.
func Mask(key string) string {
	if len(key) > 12 {
		return key[:7] + "..." + key[len(key)-4:]
	}
	return "••••••••"
}

// Validate applies the same sanity checks the tools do before accepting a
// key.
func Validate(key string) error {
	if key == "" {
		return errors.New("API key is empty")
	}
	if len(key) < 20 {
		return errors.New("API key looks too short")
	}
	if key[:3] != "sk-" {
		return errors.New("API key should start with 'sk-'")
	}
	return nil
}

func loadFromEnvFile() (string, error) {
	path, err := config.GlobalEnvFile()
	if err != nil {
		return "", err
	}
	if !config.FileExists(path) {
		return "", ErrNotFound
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if key := vars[EnvVar]; key != "" {
		return key, nil
	}
	return "", ErrNotFound
}

func saveToEnvFile(key string) error {
	if err := config.EnsureGlobalDir(); err != nil {
		return err
	}
	path, err := config.GlobalEnvFile()
	if err != nil {
		return err
	}
	return godotenv.Write(map[string]string{EnvVar: key}, path)
}
