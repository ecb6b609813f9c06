package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/idilsaglam/profile/internal/model"
)

// JSON-backed account storage for the local user API. Single file,
// human-readable. Callers serialize access.

type Store struct {
	path string
}

func New(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

// Load returns no accounts (and no error) when the file does not exist yet.
func (s *Store) Load() ([]model.Account, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Account{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var accounts []model.Account
	if err := json.Unmarshal(b, &accounts); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return accounts, nil
}

func (s *Store) Save(accounts []model.Account) error {
	b, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	// hashes and tokens live here: owner-only
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
