package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvmux/internal/mkvmerge"
)

type executorCall struct {
	binary string
	args   []string
}

// fakeExecutor answers every invocation from a canned handler and records
// the calls it saw.
type fakeExecutor struct {
	calls   []executorCall
	handler func(binary string, args []string) (mkvmerge.Outcome, error)
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string) (mkvmerge.Outcome, error) {
	f.calls = append(f.calls, executorCall{binary: binary, args: append([]string(nil), args...)})
	if f.handler != nil {
		return f.handler(binary, args)
	}
	return mkvmerge.Outcome{}, nil
}

func identifyHandler(payload string) func(string, []string) (mkvmerge.Outcome, error) {
	return func(binary string, args []string) (mkvmerge.Outcome, error) {
		if len(args) > 0 && args[0] == "--identify" {
			return mkvmerge.Outcome{Stdout: payload}, nil
		}
		return mkvmerge.Outcome{Stdout: "Muxing took 1 second."}, nil
	}
}

type cliTestEnv struct {
	configPath string
	baseDir    string
}

// setupCLITestEnv isolates HOME and writes a config file pointing every
// directory at the test's temp dir. Cache is disabled unless enabled is set.
func setupCLITestEnv(t *testing.T, cacheEnabled bool) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[mkvmerge]
binary = "mkvmerge"

[identify_cache]
enabled = %t
dir = %q

[logging]
format = "text"
level = "error"
`, cacheEnabled, filepath.Join(base, "cache"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, baseDir: base}
}

// runCLI executes the command tree with the given arguments and returns
// captured stdout.
func runCLI(t *testing.T, exec mkvmerge.Executor, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()

	ctx := newCommandContext()
	ctx.executor = exec

	cmd := newRootCommandWith(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func tempMediaFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("not really matroska"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

const identPayload = `{
	"file_name": "movie.mkv",
	"container": {"recognized": true, "supported": true, "type": "Matroska", "properties": {"title": "Example"}},
	"tracks": [
		{"id": 0, "codec": "AVC/H.264", "type": "video", "properties": {"language": "und", "default_track": true}},
		{"id": 1, "codec": "AAC", "type": "audio", "properties": {"language": "eng", "track_name": "Stereo"}}
	],
	"attachments": [
		{"id": 1, "file_name": "cover.jpg", "size": 4096, "content_type": "image/jpeg", "properties": {"uid": 7}}
	],
	"chapters": [{"num_entries": 12}]
}`
