package main

import (
	"encoding/json"
	"testing"
)

func TestIdentifyRendersTables(t *testing.T) {
	env := setupCLITestEnv(t, false)
	exec := &fakeExecutor{handler: identifyHandler(identPayload)}
	media := tempMediaFile(t, "movie.mkv")

	out, err := runCLI(t, exec, env, "identify", media)
	if err != nil {
		t.Fatalf("identify: %v", err)
	}

	requireContains(t, out, "Container: Matroska")
	requireContains(t, out, "Title: Example")
	requireContains(t, out, "AVC/H.264")
	requireContains(t, out, "English (eng)")
	requireContains(t, out, "cover.jpg")
	requireContains(t, out, "Chapters: 12 entries")
}

func TestIdentifyJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t, false)
	exec := &fakeExecutor{handler: identifyHandler(identPayload)}
	media := tempMediaFile(t, "movie.mkv")

	out, err := runCLI(t, exec, env, "identify", "--json", media)
	if err != nil {
		t.Fatalf("identify --json: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	container, ok := payload["container"].(map[string]any)
	if !ok || container["type"] != "Matroska" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestIdentifyUsesCacheOnSecondRun(t *testing.T) {
	env := setupCLITestEnv(t, true)
	exec := &fakeExecutor{handler: identifyHandler(identPayload)}
	media := tempMediaFile(t, "movie.mkv")

	if _, err := runCLI(t, exec, env, "identify", media); err != nil {
		t.Fatalf("first identify: %v", err)
	}
	firstCalls := len(exec.calls)

	out, err := runCLI(t, exec, env, "identify", media)
	if err != nil {
		t.Fatalf("second identify: %v", err)
	}
	if len(exec.calls) != firstCalls {
		t.Fatalf("expected cached result, executor ran %d more times", len(exec.calls)-firstCalls)
	}
	requireContains(t, out, "Source: identification cache")
}

func TestIdentifyNoCacheBypassesStore(t *testing.T) {
	env := setupCLITestEnv(t, true)
	exec := &fakeExecutor{handler: identifyHandler(identPayload)}
	media := tempMediaFile(t, "movie.mkv")

	if _, err := runCLI(t, exec, env, "identify", media); err != nil {
		t.Fatalf("first identify: %v", err)
	}
	firstCalls := len(exec.calls)

	if _, err := runCLI(t, exec, env, "identify", "--no-cache", media); err != nil {
		t.Fatalf("identify --no-cache: %v", err)
	}
	if len(exec.calls) == firstCalls {
		t.Fatal("expected --no-cache to run mkvmerge again")
	}
}
