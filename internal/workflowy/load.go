package workflowy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode parses an initialization payload from r. The whole input must be a
// single JSON document; trailing content is an error.
func Decode(r io.Reader) (*InitData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var data InitData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// LoadFile reads an initialization payload previously saved to disk.
func LoadFile(path string) (*InitData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck // read-only file

	data, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return data, nil
}
