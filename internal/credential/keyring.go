package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "ganttboard"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/ganttboard/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("ganttboard-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// APIToken is the key/secret pair used for ERP token authentication.
type APIToken struct {
	Key    string
	Secret string
}

// GetToken retrieves the API token stored for a source id.
func GetToken(sourceID string) (APIToken, error) {
	key, err := get(sourceID + ".api_key")
	if err != nil {
		return APIToken{}, err
	}
	secret, err := get(sourceID + ".api_secret")
	if err != nil {
		return APIToken{}, err
	}
	return APIToken{Key: key, Secret: secret}, nil
}

// SetToken stores the API token for a source id.
func SetToken(sourceID string, token APIToken) error {
	if err := set(sourceID+".api_key", token.Key); err != nil {
		return err
	}
	return set(sourceID+".api_secret", token.Secret)
}

// DeleteToken removes the API token stored for a source id.
func DeleteToken(sourceID string) error {
	if err := remove(sourceID + ".api_key"); err != nil {
		return err
	}
	return remove(sourceID + ".api_secret")
}

// get retrieves a credential value by key from the system keyring.
func get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// set stores a credential value by key in the system keyring.
func set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// remove deletes a credential by key from the system keyring.
func remove(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}
