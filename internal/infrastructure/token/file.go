// Package token provides the persisted-credential stores behind
// ports.TokenStore. Only the session store may use them; the single-writer
// rule keeps a logout from racing a concurrent fetch over the same token.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// fileLayout is the on-disk shape of the credential file.
type fileLayout struct {
	Token string `json:"token"`
}

// FileStore persists the token in a mode-0600 JSON file, for non-browser
// clients of the portal's session core.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. When path is empty the default
// location under the user config directory is used.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("token: resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "civicflow", "credentials.json")
	}
	return &FileStore{path: path}, nil
}

// Load returns the persisted token, or "" when the file does not exist.
func (s *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("token: read credentials: %w", err)
	}

	var layout fileLayout
	if err := json.Unmarshal(raw, &layout); err != nil {
		return "", fmt.Errorf("token: parse credentials: %w", err)
	}
	return layout.Token, nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("token: create credentials dir: %w", err)
	}

	raw, err := json.Marshal(fileLayout{Token: token})
	if err != nil {
		return fmt.Errorf("token: encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("token: write credentials: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("token: remove credentials: %w", err)
	}
	return nil
}
