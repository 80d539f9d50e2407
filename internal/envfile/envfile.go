// Package envfile loads environment variables from .env files so a
// WORKFLOWY_SESSION_ID can live next to a project instead of in the shell.
// Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one KEY=VALUE assignment from an env file.
type Entry struct {
	Key   string
	Value string
}

// Parse reads KEY=VALUE lines from r in file order. Blank lines, comments
// and lines without '=' are skipped.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if entry, ok := parseLine(line); ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Load applies the file's variables that are not already set and returns the
// keys it applied. A missing file is not an error.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	entries, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	var applied []string
	for _, entry := range entries {
		if os.Getenv(entry.Key) != "" {
			continue
		}
		if err := os.Setenv(entry.Key, entry.Value); err != nil {
			return applied, fmt.Errorf("setting %s: %w", entry.Key, err)
		}
		applied = append(applied, entry.Key)
	}
	return applied, nil
}

// LoadAll loads each path in order; earlier files win because later ones
// never override a variable that is already set. Unreadable files are
// reported in errs and skipped.
func LoadAll(paths ...string) (applied []string, errs []error) {
	for _, path := range paths {
		keys, err := Load(path)
		if err != nil {
			errs = append(errs, err)
		}
		applied = append(applied, keys...)
	}
	return applied, errs
}

// parseLine extracts KEY=VALUE, dropping an optional "export " prefix and
// one pair of matching quotes around the value.
func parseLine(line string) (Entry, bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return Entry{}, false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return Entry{}, false
	}

	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return Entry{Key: key, Value: value}, true
}
