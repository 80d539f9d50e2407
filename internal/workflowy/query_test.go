package workflowy

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestQueryNodes_BugScenario(t *testing.T) {
	child := newNode("fix later")
	bug := newNode("Bug: login", child)
	roots := []*Node{bug, newNode("other")}

	got, err := QueryNodes(roots, QueryOptions{Mode: ModeContains, Pattern: "Bug"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Same(t, bug, got[0])
	require.Len(t, got[0].Children, 1)
	assert.Same(t, child, got[0].Children[0], "matched subtree stays intact")
}

func TestQueryNodes_PrunesBelowMatch(t *testing.T) {
	roots := []*Node{
		newNode("todo list", newNode("todo: milk"), newNode("eggs")),
	}

	got, err := QueryNodes(roots, QueryOptions{Mode: ModeContains, Pattern: "todo"})
	require.NoError(t, err)

	assert.Equal(t, []string{"todo list"}, names(got))
	assert.Len(t, got[0].Children, 2)
}

func TestQueryNodes_Modes(t *testing.T) {
	roots := []*Node{
		newNode("Projects",
			newNode("<b>Alpha</b> launch"),
			newNode("Beta &amp; Gamma"),
			newNode("alpha notes"),
		),
		newNode("Alpha"),
	}

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{
			name: "contains is case sensitive",
			opts: QueryOptions{Mode: ModeContains, Pattern: "Alpha"},
			want: []string{"<b>Alpha</b> launch", "Alpha"},
		},
		{
			name: "exact uses normalized name",
			opts: QueryOptions{Mode: ModeExact, Pattern: "Beta & Gamma"},
			want: []string{"Beta &amp; Gamma"},
		},
		{
			name: "exact rejects partial",
			opts: QueryOptions{Mode: ModeExact, Pattern: "Alph"},
			want: []string{},
		},
		{
			name: "starts-with",
			opts: QueryOptions{Mode: ModeStartsWith, Pattern: "alpha"},
			want: []string{"alpha notes"},
		},
		{
			name: "regex unanchored",
			opts: QueryOptions{Mode: ModeRegex, Pattern: "(?i)alpha"},
			want: []string{"<b>Alpha</b> launch", "alpha notes", "Alpha"},
		},
		{
			name: "regex anchored",
			opts: QueryOptions{Mode: ModeRegex, Pattern: "^Alpha$"},
			want: []string{"Alpha"},
		},
		{
			name: "root match suppresses descendants",
			opts: QueryOptions{Mode: ModeContains, Pattern: "o"},
			want: []string{"Projects"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QueryNodes(roots, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestQueryNodes_PreOrderAcrossRoots(t *testing.T) {
	roots := []*Node{
		newNode("r1", newNode("x1", newNode("x2")), newNode("y", newNode("x3"))),
		newNode("x4"),
	}

	got, err := QueryNodes(roots, QueryOptions{Mode: ModeStartsWith, Pattern: "x"})
	require.NoError(t, err)

	assert.Equal(t, []string{"x1", "x3", "x4"}, names(got))
}

func TestQueryNodes_Idempotent(t *testing.T) {
	roots := sampleForest()
	for _, mode := range []MatchMode{ModeContains, ModeExact, ModeStartsWith} {
		opts := QueryOptions{Mode: mode, Pattern: "B"}

		first, err := QueryNodes(roots, opts)
		require.NoError(t, err)
		second, err := QueryNodes(first, opts)
		require.NoError(t, err)

		assert.Equal(t, names(first), names(second), mode.String())
	}
}

func TestQueryNodes_EmptyForest(t *testing.T) {
	got, err := QueryNodes(nil, QueryOptions{Pattern: "x"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewMatcher_InvalidRegex(t *testing.T) {
	_, err := NewMatcher(ModeRegex, "(unbalanced")
	require.Error(t, err)

	var patternErr *PatternError
	require.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "(unbalanced", patternErr.Pattern)
	assert.Contains(t, err.Error(), `"(unbalanced"`)

	var syntaxErr *syntax.Error
	assert.True(t, errors.As(err, &syntaxErr), "underlying regexp error should be reachable")
}

func TestQueryNodes_InvalidRegexIsNotEmptyResult(t *testing.T) {
	got, err := QueryNodes(sampleForest(), QueryOptions{Mode: ModeRegex, Pattern: "a(b"})

	assert.Nil(t, got)
	var patternErr *PatternError
	assert.ErrorAs(t, err, &patternErr)
}

func TestNewMatcher_NonRegexModesNeverFail(t *testing.T) {
	for _, mode := range []MatchMode{ModeContains, ModeExact, ModeStartsWith} {
		_, err := NewMatcher(mode, "(unbalanced[")
		assert.NoError(t, err, mode.String())
	}
}

func TestNewMatcher_UnknownMode(t *testing.T) {
	_, err := NewMatcher(MatchMode(42), "x")
	assert.Error(t, err)
}

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		input   string
		want    MatchMode
		wantErr bool
	}{
		{input: "", want: ModeContains},
		{input: "contains", want: ModeContains},
		{input: "exact", want: ModeExact},
		{input: "starts-with", want: ModeStartsWith},
		{input: "regex", want: ModeRegex},
		{input: "fuzzy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMatchMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.input != "" {
				assert.Equal(t, tt.input, got.String())
			}
		})
	}
}
