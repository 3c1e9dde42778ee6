package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notarycheck/internal/config"
)

func TestCheckReadable_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".notarization_id")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckReadable("state", path)
	if !result.Passed || result.Optional {
		t.Fatalf("expected required pass, got %#v", result)
	}
}

func TestCheckReadable_Missing(t *testing.T) {
	result := CheckReadable("state", filepath.Join(t.TempDir(), "nope"))
	if !result.Passed {
		t.Fatalf("expected missing state file to pass, got %#v", result)
	}
	if !result.Optional {
		t.Fatal("expected missing state file to be optional")
	}
}

func TestCheckReadable_Directory(t *testing.T) {
	result := CheckReadable("state", t.TempDir())
	if result.Passed {
		t.Fatal("expected failure for directory")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckWritableTarget_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckWritableTarget("ci", path); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
}

func TestCheckWritableTarget_Creatable(t *testing.T) {
	result := CheckWritableTarget("ci", filepath.Join(t.TempDir(), "out"))
	if !result.Passed {
		t.Fatalf("expected pass for creatable target, got %s", result.Detail)
	}
}

func TestCheckWritableTarget_MissingParent(t *testing.T) {
	result := CheckWritableTarget("ci", filepath.Join(t.TempDir(), "missing", "out"))
	if result.Passed {
		t.Fatal("expected failure when parent directory is missing")
	}
}

func TestCheckCredentials(t *testing.T) {
	cfg := config.Default()
	if result := CheckCredentials(&cfg); result.Passed {
		t.Fatal("expected failure with blank credentials")
	}
	cfg.Credentials.AppleID = "dev@example.com"
	cfg.Credentials.Password = "secret"
	cfg.Credentials.TeamID = "TEAM123"
	result := CheckCredentials(&cfg)
	if !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if result.Detail == "" || strings.Contains(result.Detail, "secret") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "xcrun")
	if err := os.WriteFile(binary, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.NotaryTool.Binary = binary
	cfg.Paths.StateFile = filepath.Join(dir, ".notarization_id")
	cfg.Credentials.AppleID = "dev@example.com"
	cfg.Credentials.Password = "secret"
	cfg.Credentials.TeamID = "TEAM123"

	results := RunAll(&cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if Failed(results) {
		t.Fatalf("expected no required failures, got %#v", results)
	}

	cfg.NotaryTool.Binary = "clearly-not-present-binary"
	if !Failed(RunAll(&cfg)) {
		t.Fatal("expected missing binary to fail")
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatalf("expected nil results, got %#v", results)
	}
}

