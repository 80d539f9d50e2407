package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the config file name inside Dir.
const FileName = "config.json"

// EnvSessionID is the environment variable that overrides the stored session.
const EnvSessionID = "WORKFLOWY_SESSION_ID"

const sessionIDKey = "sessionId"

// Config is the persisted settings file. Keys other than the ones wf knows
// are kept in Extra so a write never drops them.
type Config struct {
	SessionID string

	Extra map[string]json.RawMessage
}

// Store reads and merges the config file at the path its resolver returns.
type Store struct {
	resolve func() string
}

// NewStore creates a store whose file location comes from resolve.
func NewStore(resolve func() string) *Store {
	return &Store{resolve: resolve}
}

// DefaultStore returns a store backed by Path.
func DefaultStore() *Store {
	return NewStore(Path)
}

// Path returns the resolved config file path.
func (s *Store) Path() string {
	return s.resolve()
}

// Read loads the config. A missing file yields an empty config.
func (s *Store) Read() (*Config, error) {
	raw, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if value, ok := raw[sessionIDKey]; ok {
		if err := json.Unmarshal(value, &cfg.SessionID); err != nil {
			return nil, fmt.Errorf("config %s: %s must be a string: %w", s.Path(), sessionIDKey, err)
		}
		delete(raw, sessionIDKey)
	}
	if len(raw) > 0 {
		cfg.Extra = raw
	}
	return cfg, nil
}

// Merge writes updates over the existing file. Empty fields in updates leave
// the stored value alone and unrelated keys are preserved.
func (s *Store) Merge(updates Config) error {
	path := s.Path()
	if path == "" {
		return errors.New("cannot determine config directory")
	}

	raw, err := s.readRaw()
	if err != nil {
		return err
	}

	for key, value := range updates.Extra {
		raw[key] = value
	}
	if updates.SessionID != "" {
		encoded, err := json.Marshal(updates.SessionID)
		if err != nil {
			return fmt.Errorf("encoding session id: %w", err)
		}
		raw[sessionIDKey] = encoded
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ResolveSessionID returns the session id from $WORKFLOWY_SESSION_ID, or
// from the config file when the variable is unset. Returns "" when neither
// has one.
func (s *Store) ResolveSessionID() (string, error) {
	if fromEnv := os.Getenv(EnvSessionID); fromEnv != "" {
		return fromEnv, nil
	}
	cfg, err := s.Read()
	if err != nil {
		return "", err
	}
	return cfg.SessionID, nil
}

// readRaw returns the config file as a key map; empty when the file is absent.
func (s *Store) readRaw() (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}

	path := s.Path()
	if path == "" {
		return raw, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return raw, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	return raw, nil
}
