package auth

import (
	"encoding/json"
	"fmt"

	"github.com/99designs/keyring"
	"golang.org/x/oauth2"
)

const tokenKey = "gmail-token"

// KeyringStore keeps the token in the system keyring for users who prefer
// not to leave credentials on disk in plain JSON.
type KeyringStore struct {
	service string
}

func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

func (s *KeyringStore) open() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: s.service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/" + s.service + "/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt(s.service + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

func (s *KeyringStore) Load() (*oauth2.Token, error) {
	ring, err := s.open()
	if err != nil {
		return nil, err
	}

	item, err := ring.Get(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("getting credential %q: %w", tokenKey, err)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(item.Data, token); err != nil {
		return nil, fmt.Errorf("failed to decode stored token: %w", err)
	}
	return token, nil
}

func (s *KeyringStore) Store(token *oauth2.Token) error {
	ring, err := s.open()
	if err != nil {
		return err
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := ring.Set(keyring.Item{Key: tokenKey, Data: data}); err != nil {
		return fmt.Errorf("setting credential %q: %w", tokenKey, err)
	}
	return nil
}
