package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/handlebauer/workflowy-scraper/internal/markup"
	"github.com/handlebauer/workflowy-scraper/internal/output"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// Fixed file names used by WriteOutput.
const (
	JSONFileName     = "workflowy.json"
	MarkdownFileName = "workflowy.md"
)

// Result describes the files written by WriteOutput.
type Result struct {
	JSONPath      string `json:"json_path"`
	JSONBytes     int    `json:"json_bytes"`
	MarkdownPath  string `json:"markdown_path"`
	MarkdownBytes int    `json:"markdown_bytes"`
	Nodes         int    `json:"nodes"`
}

// WriteToFile writes content to path in one call, creating parent
// directories first. Returns the number of bytes written.
func WriteToFile(content []byte, path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, output.NewSystemErrorWithCause(
			fmt.Sprintf("failed to create directory for %s: %v", path, err), err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return 0, output.NewSystemErrorWithCause(
			fmt.Sprintf("failed to write file %s: %v", path, err), err)
	}
	return len(content), nil
}

// WriteOutput writes roots into dir as workflowy.json and then workflowy.md.
// It stops at the first failure, so a failed JSON write leaves no Markdown.
func WriteOutput(roots []*workflowy.Node, dir string) (*Result, error) {
	data, err := BuildJSON(roots)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to encode JSON", err)
	}

	result := &Result{
		JSONPath:     filepath.Join(dir, JSONFileName),
		MarkdownPath: filepath.Join(dir, MarkdownFileName),
		Nodes:        TotalNodeCount(roots),
	}

	if result.JSONBytes, err = WriteToFile(data, result.JSONPath); err != nil {
		return nil, err
	}
	if result.MarkdownBytes, err = WriteToFile([]byte(BuildMarkdown(roots)), result.MarkdownPath); err != nil {
		return nil, err
	}
	return result, nil
}

// WriteSections writes one Markdown document per root into dir, named after
// the root. Repeated names get a numeric suffix ("-2", "-3", ...).
// Returns the written paths in root order.
func WriteSections(roots []*workflowy.Node, dir string) ([]string, error) {
	paths := make([]string, 0, len(roots))
	used := make(map[string]bool, len(roots))

	for _, root := range roots {
		base := markup.Filename(root.Name)
		stem := base
		for n := 2; used[stem]; n++ {
			stem = fmt.Sprintf("%s-%d", base, n)
		}
		used[stem] = true

		path := filepath.Join(dir, stem+".md")
		if _, err := WriteToFile([]byte(BuildSectionMarkdown(root)), path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
