// Package workflowy models the WorkFlowy initialization payload and provides
// tree traversal, name queries and the HTTP client that fetches the payload.
package workflowy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Node is a single WorkFlowy bullet. Field tags follow the compact keys the
// WorkFlowy API uses. Keys the struct does not know about are kept in Extra
// and written back unchanged on marshal.
type Node struct {
	ID             string          `json:"id"`
	Name           string          `json:"nm"`
	Note           string          `json:"no,omitempty"`
	CreatedAt      int64           `json:"ct"`
	LastModifiedAt int64           `json:"lm"`
	LastModifiedBy *int64          `json:"lmb,omitempty"`
	CreatedBy      *int64          `json:"cb,omitempty"`
	Completed      *int64          `json:"cp,omitempty"`
	Children       []*Node         `json:"ch,omitempty"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// IsCompleted reports whether the node is checked off. A zero completion
// timestamp counts as not completed.
func (n *Node) IsCompleted() bool {
	return n.Completed != nil && *n.Completed != 0
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

var nodeKeys = []string{"id", "nm", "no", "ct", "lm", "lmb", "cb", "cp", "ch", "metadata"}

// UnmarshalJSON decodes the known fields and stashes the rest in Extra.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := extraFields(data, nodeKeys)
	if err != nil {
		return err
	}
	*n = Node(decoded)
	n.Extra = extra
	return nil
}

// MarshalJSON encodes the known fields merged with Extra.
func (n Node) MarshalJSON() ([]byte, error) {
	type plain Node
	return marshalWithExtra(plain(n), n.Extra)
}

// extraFields returns the top-level keys of data that are not in known.
// Returns nil when there are none.
func extraFields(data []byte, known []string) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, key := range known {
		delete(all, key)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// marshalWithExtra encodes value and appends any extra keys it does not
// already define, sorted by name, after the known fields. Known fields always
// win over a same-named extra key.
func marshalWithExtra(value any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := marshalCompact(value)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var known map[string]json.RawMessage
	if err := json.Unmarshal(data, &known); err != nil {
		return nil, fmt.Errorf("merging extra fields: %w", err)
	}
	keys := make([]string, 0, len(extra))
	for key := range extra {
		if _, ok := known[key]; !ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return data, nil
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(bytes.TrimSuffix(data, []byte("}")))
	for _, key := range keys {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, err := marshalCompact(key)
		if err != nil {
			return nil, fmt.Errorf("merging extra fields: %w", err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCompact is json.Marshal without HTML escaping, so markup stored in
// names survives an export as written.
func marshalCompact(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
