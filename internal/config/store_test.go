package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wf", FileName)
	return NewStore(func() string { return path }), path
}

func TestStore_ReadMissingFile(t *testing.T) {
	store, _ := tempStore(t)

	cfg, err := store.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.SessionID != "" || cfg.Extra != nil {
		t.Errorf("Read() = %+v, want empty config", cfg)
	}
}

func TestStore_MergeThenRead(t *testing.T) {
	store, path := tempStore(t)

	if err := store.Merge(Config{SessionID: "test-session-123"}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	cfg, err := store.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.SessionID != "test-session-123" {
		t.Errorf("SessionID = %q, want %q", cfg.SessionID, "test-session-123")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config permissions = %o, want 600", info.Mode().Perm())
	}
}

func TestStore_MergeOverwritesSameKey(t *testing.T) {
	store, _ := tempStore(t)

	for _, id := range []string{"first", "second"} {
		if err := store.Merge(Config{SessionID: id}); err != nil {
			t.Fatalf("Merge(%q) error = %v", id, err)
		}
	}

	cfg, err := store.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.SessionID != "second" {
		t.Errorf("SessionID = %q, want %q", cfg.SessionID, "second")
	}
}

func TestStore_MergeKeepsUnrelatedKeys(t *testing.T) {
	store, path := tempStore(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	existing := `{"sessionId": "old", "theme": "dark", "nested": {"a": 1}}`
	if err := os.WriteFile(path, []byte(existing), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := store.Merge(Config{SessionID: "new"}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("config is not valid JSON: %v\n%s", err, data)
	}
	if got["sessionId"] != "new" {
		t.Errorf("sessionId = %v, want %q", got["sessionId"], "new")
	}
	if got["theme"] != "dark" {
		t.Errorf("theme = %v, want %q (unrelated key dropped)", got["theme"], "dark")
	}
	if _, ok := got["nested"]; !ok {
		t.Error("nested key dropped by merge")
	}
	if !strings.Contains(string(data), "\n  \"") {
		t.Errorf("config should be indented with two spaces:\n%s", data)
	}
}

func TestStore_MergeEmptyUpdateKeepsSession(t *testing.T) {
	store, _ := tempStore(t)
	if err := store.Merge(Config{SessionID: "keep"}); err != nil {
		t.Fatal(err)
	}

	if err := store.Merge(Config{Extra: map[string]json.RawMessage{"k": json.RawMessage(`true`)}}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	cfg, err := store.Read()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SessionID != "keep" {
		t.Errorf("SessionID = %q, want %q", cfg.SessionID, "keep")
	}
	if string(cfg.Extra["k"]) != "true" {
		t.Errorf("Extra[k] = %s, want true", cfg.Extra["k"])
	}
}

func TestStore_ReadMalformed(t *testing.T) {
	store, path := tempStore(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Read(); err == nil {
		t.Error("Read() expected error for malformed config")
	}
	if err := store.Merge(Config{SessionID: "x"}); err == nil {
		t.Error("Merge() should refuse to overwrite a malformed config")
	}
}

func TestStore_MergeWithoutPath(t *testing.T) {
	store := NewStore(func() string { return "" })
	if err := store.Merge(Config{SessionID: "x"}); err == nil {
		t.Error("Merge() expected error when config path is unknown")
	}
}

func TestStore_ResolveSessionID(t *testing.T) {
	store, _ := tempStore(t)
	if err := store.Merge(Config{SessionID: "from-file"}); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvSessionID, "from-env")
	got, err := store.ResolveSessionID()
	if err != nil {
		t.Fatal(err)
	}
	if got != "from-env" {
		t.Errorf("ResolveSessionID() = %q, want env value", got)
	}

	t.Setenv(EnvSessionID, "")
	got, err = store.ResolveSessionID()
	if err != nil {
		t.Fatal(err)
	}
	if got != "from-file" {
		t.Errorf("ResolveSessionID() = %q, want file value", got)
	}
}

func TestDefaultStore_UsesConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WF_CONFIG_HOME", dir)

	if got := DefaultStore().Path(); got != filepath.Join(dir, FileName) {
		t.Errorf("Path() = %q, want %q", got, filepath.Join(dir, FileName))
	}
}
