package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/handlebauer/workflowy-scraper/internal/output"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

func TestBuildJSON_Indented(t *testing.T) {
	data, err := BuildJSON([]*workflowy.Node{{ID: "a", Name: "x"}})
	require.NoError(t, err)

	want := "[\n  {\n    \"id\": \"a\",\n    \"nm\": \"x\",\n    \"ct\": 0,\n    \"lm\": 0\n  }\n]\n"
	assert.Equal(t, want, string(data))
}

func TestBuildJSON_EmptyAndNil(t *testing.T) {
	for _, roots := range [][]*workflowy.Node{nil, {}} {
		data, err := BuildJSON(roots)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	}
}

func TestBuildJSON_KeepsMarkupAndExtras(t *testing.T) {
	roots := []*workflowy.Node{{
		ID:    "a",
		Name:  "<b>x</b> & y",
		Extra: map[string]json.RawMessage{"colored": json.RawMessage(`"red"`)},
	}}

	data, err := BuildJSON(roots)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"nm": "<b>x</b> & y"`)

	var decoded []*workflowy.Node
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "<b>x</b> & y", decoded[0].Name)
	assert.JSONEq(t, `"red"`, string(decoded[0].Extra["colored"]))
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := output.NewPrinter(&buf, true, false)

	err := FormatJSON(printer, []*workflowy.Node{node("A", node("B"))})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "A", decoded[0]["nm"])
	assert.Len(t, decoded[0]["ch"], 1)
}

func TestBuildYAML(t *testing.T) {
	stamp := int64(5)
	roots := []*workflowy.Node{{
		ID:        "a",
		Name:      "true",
		Note:      "line one\nline two",
		CreatedAt: 12,
		Completed: &stamp,
		Children:  []*workflowy.Node{{ID: "b", Name: "child"}},
		Extra:     map[string]json.RawMessage{"colored": json.RawMessage(`"red"`), "ratio": json.RawMessage(`0.5`)},
	}}

	data, err := BuildYAML(roots)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)

	got := decoded[0]
	assert.Equal(t, "a", got["id"])
	assert.Equal(t, "true", got["nm"], "string that looks like a bool stays a string")
	assert.Equal(t, "line one\nline two", got["no"])
	assert.Equal(t, 12, got["ct"])
	assert.Equal(t, 5, got["cp"])
	assert.Equal(t, "red", got["colored"])
	assert.InDelta(t, 0.5, got["ratio"], 1e-9)

	children, ok := got["ch"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)
	assert.Equal(t, "child", children[0].(map[string]any)["nm"])
}

func TestBuildYAML_KeepsFieldOrder(t *testing.T) {
	data, err := BuildYAML([]*workflowy.Node{{ID: "a", Name: "x"}})
	require.NoError(t, err)

	assert.Equal(t, "- id: a\n  nm: x\n  ct: 0\n  lm: 0\n", string(data))
}

func TestBuildYAML_Empty(t *testing.T) {
	data, err := BuildYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}
