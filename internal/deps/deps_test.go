package deps

import "testing"

func TestCheckBinariesMissingCommand(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "mkvmerge", Command: ""}})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected unavailable status for empty command")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", statuses[0].Detail)
	}
}

func TestCheckBinariesUnknownBinary(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{
		Name:    "mkvmerge",
		Command: "definitely-not-a-real-binary-mkvmux",
	}})
	if statuses[0].Available {
		t.Fatal("expected unavailable status for unknown binary")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected detail explaining the missing binary")
	}
}

func TestCheckBinariesTrimsWhitespace(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{
		Name:        "mkvmerge",
		Command:     "  sh  ",
		Description: "  shell  ",
	}})
	if statuses[0].Command != "sh" {
		t.Fatalf("expected trimmed command, got %q", statuses[0].Command)
	}
	if statuses[0].Description != "shell" {
		t.Fatalf("expected trimmed description, got %q", statuses[0].Description)
	}
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %s", statuses[0].Detail)
	}
}

func TestRequirementsUsesConfiguredBinary(t *testing.T) {
	reqs := Requirements("/opt/mkvtoolnix/bin/mkvmerge")
	if len(reqs) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/mkvtoolnix/bin/mkvmerge" {
		t.Fatalf("unexpected command: %q", reqs[0].Command)
	}
}
