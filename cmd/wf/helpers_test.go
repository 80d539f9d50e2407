package main

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/handlebauer/workflowy-scraper/internal/config"
)

// testPayload has one main-tree bullet and two shared trees.
const testPayload = `{
  "projectTreeData": {
    "clientId": "test-client",
    "mainProjectTreeInfo": {
      "rootProject": null,
      "rootProjectChildren": [
        {"id": "m1", "nm": "Inbox", "ct": 1, "lm": 2, "ch": [
          {"id": "m2", "nm": "Bug: private", "ct": 3, "lm": 4}
        ]}
      ],
      "dateJoinedTimestampInSeconds": 1600000000
    },
    "auxiliaryProjectTreeInfos": [
      {
        "rootProject": {"id": "t1", "nm": "<b>Team</b> &amp; Co", "no": "shared", "ct": 5, "lm": 6},
        "rootProjectChildren": [
          {"id": "t2", "nm": "Bug: login", "ct": 7, "lm": 8, "ch": [
            {"id": "t3", "nm": "repro", "ct": 9, "lm": 10}
          ]},
          {"id": "t4", "nm": "Roadmap", "ct": 11, "lm": 12, "cp": 13}
        ],
        "shareId": "share-1"
      },
      {
        "rootProject": {"id": "r1", "nm": "Reading", "ct": 14, "lm": 15},
        "rootProjectChildren": [{"id": "r2", "nm": "Book", "ct": 16, "lm": 17}]
      }
    ]
  },
  "settings": {"theme": "dark"}
}`

// mockHTTPDoer implements workflowy.HTTPDoer and records the last cookie.
type mockHTTPDoer struct {
	status      int
	contentType string
	body        string
	err         error

	requests int
	cookie   string
}

func (m *mockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	m.requests++
	m.cookie = req.Header.Get("Cookie")
	if m.err != nil {
		return nil, m.err
	}
	header := http.Header{}
	if m.contentType != "" {
		header.Set("Content-Type", m.contentType)
	}
	return &http.Response{
		StatusCode: m.status,
		Status:     http.StatusText(m.status),
		Header:     header,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

func okDoer() *mockHTTPDoer {
	return &mockHTTPDoer{status: http.StatusOK, contentType: "application/json", body: testPayload}
}

// setupTestEnv isolates a test from the user's environment and config.
// It returns the temporary working directory.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WF_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv(config.EnvSessionID, "")
	t.Setenv(envBaseURL, "")
	t.Setenv("WF_LOG_LEVEL", "")
	t.Chdir(dir)
	return dir
}

// writePayloadFile saves testPayload under dir and returns its path.
func writePayloadFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(path, []byte(testPayload), 0o600); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	return path
}

// testStore returns a config store rooted in dir.
func testStore(dir string) *config.Store {
	path := filepath.Join(dir, "config", config.FileName)
	return config.NewStore(func() string { return path })
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// runCmd executes the root command with args and separate output buffers.
func runCmd(d *deps, args ...string) cmdResult {
	cmd := newRootCmdInternal(d)
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
