package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"vidqa/api"
	"vidqa/api/store"
	"vidqa/normalize"
)

const testVideoID = "dQw4w9WgXcQ"

func setupMockService(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	for _, key := range []string{"KAFKA_BOOTSTRAP_SERVERS", "S3_BUCKET", "REDIS_ADDR", "VIDQA_LOG_FILE", "VIDQA_API_URL"} {
		t.Setenv(key, "")
	}

	srv := httptest.NewServer(api.NewRouter(api.NewServer(store.NewMemory())))
	t.Cleanup(srv.Close)
	return srv.URL
}

func runCLI(t *testing.T, apiURL string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{
		"--api-url", apiURL,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--log-level", "error",
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIVideoLifecycle(t *testing.T) {
	url := setupMockService(t)

	out, _, err := runCLI(t, url, "process", "https://www.youtube.com/watch?v="+testVideoID)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !strings.Contains(out, "ID:        "+testVideoID) {
		t.Fatalf("unexpected process output: %q", out)
	}

	out, _, err = runCLI(t, url, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, testVideoID) {
		t.Fatalf("list missing video: %q", out)
	}

	out, _, err = runCLI(t, url, "ask", "--video", testVideoID, "what", "is", "this", "about?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(out, "Q: what is this about?") || !strings.Contains(out, "Sources:") {
		t.Fatalf("unexpected ask output: %q", out)
	}

	out, _, err = runCLI(t, url, "history", testVideoID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "[user] what is this about?") || !strings.Contains(out, "[assistant]") {
		t.Fatalf("unexpected history output: %q", out)
	}

	out, _, err = runCLI(t, url, "summarize", testVideoID)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !strings.Contains(out, normalize.HighlightsHeading) {
		t.Fatalf("summary without highlights: %q", out)
	}

	if _, _, err := runCLI(t, url, "history", "--clear", testVideoID); err != nil {
		t.Fatalf("history --clear: %v", err)
	}
	out, _, _ = runCLI(t, url, "history", testVideoID)
	if !strings.Contains(out, "No conversation yet.") {
		t.Fatalf("history should be empty after clearing: %q", out)
	}

	if _, _, err := runCLI(t, url, "delete", testVideoID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, _, _ = runCLI(t, url, "list")
	if !strings.Contains(out, "No videos processed yet.") {
		t.Fatalf("library should be empty: %q", out)
	}
}

func TestCLIJSONOutput(t *testing.T) {
	url := setupMockService(t)

	if _, _, err := runCLI(t, url, "process", "https://youtu.be/"+testVideoID); err != nil {
		t.Fatalf("process: %v", err)
	}
	out, _, err := runCLI(t, url, "--json", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var videos []struct {
		ID struct {
			Value string `json:"value"`
		} `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &videos); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	if len(videos) != 1 || videos[0].ID.Value != testVideoID {
		t.Fatalf("unexpected videos: %+v", videos)
	}
}

func TestCLIErrors(t *testing.T) {
	url := setupMockService(t)

	if _, _, err := runCLI(t, url, "ask", "--video", "missing", "hello?"); err == nil || !strings.Contains(err.Error(), "not in the library") {
		t.Fatalf("ask about unknown video: %v", err)
	}
	if _, _, err := runCLI(t, url, "process", "not a url"); err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("process invalid url: %v", err)
	}
	if _, _, err := runCLI(t, url, "export-summary", testVideoID); err == nil || !strings.Contains(err.Error(), "S3_BUCKET") {
		t.Fatalf("export without bucket: %v", err)
	}
	if _, _, err := runCLI(t, url, "ask", "hello?"); err == nil {
		t.Fatal("ask without --video should fail")
	}
}

func TestCLIHealth(t *testing.T) {
	url := setupMockService(t)

	out, _, err := runCLI(t, url, "health")
	if err != nil || !strings.Contains(out, "is healthy") {
		t.Fatalf("health: %q, %v", out, err)
	}

	if _, _, err := runCLI(t, "http://127.0.0.1:1", "--timeout", "500ms", "health"); err == nil {
		t.Fatal("unreachable service should fail the health command")
	}
}
