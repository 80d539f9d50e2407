package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handlebauer/workflowy-scraper/internal/output"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

func sampleInitData() *workflowy.InitData {
	data := &workflowy.InitData{}
	data.ProjectTreeData.MainProjectTreeInfo.RootProjectChildren = []*workflowy.Node{
		node("Inbox", node("milk")),
	}
	data.ProjectTreeData.AuxiliaryProjectTreeInfos = []workflowy.AuxTreeInfo{
		{RootProject: node("Team"), RootProjectChildren: []*workflowy.Node{node("Roadmap"), node("Bugs")}},
		{RootProject: node("Reading"), RootProjectChildren: nil},
	}
	return data
}

func TestCollectAuxRoots(t *testing.T) {
	data := sampleInitData()

	roots := CollectAuxRoots(data)

	require.Len(t, roots, 2)
	assert.Equal(t, "Team", roots[0].Name)
	assert.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Reading", roots[1].Name)
	assert.Empty(t, roots[1].Children)
	assert.Nil(t, data.ProjectTreeData.AuxiliaryProjectTreeInfos[0].RootProject.Children)
}

func TestCollectAllRoots(t *testing.T) {
	roots := CollectAllRoots(sampleInitData())

	var got []string
	for _, r := range roots {
		got = append(got, r.Name)
	}
	assert.Equal(t, []string{"Inbox", "Team", "Reading"}, got)
	assert.Equal(t, 6, TotalNodeCount(roots))
}

func TestCollectRoots_Empty(t *testing.T) {
	data := &workflowy.InitData{}

	assert.Empty(t, CollectAuxRoots(data))
	assert.Empty(t, CollectAllRoots(data))
}

func TestWriteToFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.md")

	n, err := WriteToFile([]byte("hello"), path)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteToFile_SystemErrorOnBlockedPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := WriteToFile([]byte("x"), filepath.Join(blocker, "out.md"))

	require.Error(t, err)
	assert.Equal(t, output.ExitSystemError, output.GetExitCode(err))
}

func TestWriteOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	roots := CollectAuxRoots(sampleInitData())

	result, err := WriteOutput(roots, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, JSONFileName), result.JSONPath)
	assert.Equal(t, filepath.Join(dir, MarkdownFileName), result.MarkdownPath)
	assert.Equal(t, 4, result.Nodes)

	jsonData, err := os.ReadFile(result.JSONPath)
	require.NoError(t, err)
	assert.Len(t, jsonData, result.JSONBytes)
	var decoded []*workflowy.Node
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.Len(t, decoded, 2)

	md, err := os.ReadFile(result.MarkdownPath)
	require.NoError(t, err)
	assert.Equal(t, BuildMarkdown(roots), string(md))
	assert.Equal(t, len(md), result.MarkdownBytes)
}

func TestWriteOutput_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory named like the JSON file makes the first write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, JSONFileName), 0o755))

	result, err := WriteOutput([]*workflowy.Node{node("A")}, dir)

	require.Error(t, err)
	assert.Nil(t, result)
	_, statErr := os.Stat(filepath.Join(dir, MarkdownFileName))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "markdown must not be written after JSON failed")
}

func TestWriteSections(t *testing.T) {
	dir := t.TempDir()
	roots := []*workflowy.Node{
		node("Team", node("Roadmap")),
		node("<b>Team</b>"),
		node("Reading List"),
		node(""),
		node("Team"),
	}

	paths, err := WriteSections(roots, dir)
	require.NoError(t, err)

	want := []string{"team.md", "team-2.md", "reading-list.md", "untitled.md", "team-3.md"}
	require.Len(t, paths, len(want))
	for i, name := range want {
		assert.Equal(t, filepath.Join(dir, name), paths[i])
	}

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "# Team\n\n- Roadmap\n", string(content))
}
