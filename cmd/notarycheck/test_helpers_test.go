package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"notarycheck/internal/config"
	"notarycheck/internal/services/notarytool"
	"notarycheck/internal/submission"
)

type stubExecutor struct {
	mu     sync.Mutex
	output string
	err    error
	calls  [][]string
}

func (s *stubExecutor) Run(_ context.Context, binary string, args []string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, append([]string{binary}, args...))
	return []byte(s.output), s.err
}

func (s *stubExecutor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type cliTestEnv struct {
	dir          string
	stateFile    string
	githubOutput string
	exec         *stubExecutor
}

// setupCLITestEnv isolates HOME and the working directory and clears every
// variable the config layer reads.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	dir := t.TempDir()
	home := filepath.Join(dir, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Chdir(dir)
	for _, key := range []string{
		config.EnvAppleID,
		config.EnvAppSpecificPassword,
		config.EnvAppleIDPassword,
		config.EnvTeamID,
		config.EnvGitHubOutput,
	} {
		t.Setenv(key, "")
	}

	return &cliTestEnv{
		dir:          dir,
		stateFile:    filepath.Join(dir, submission.DefaultFileName),
		githubOutput: filepath.Join(dir, "github_output"),
		exec:         &stubExecutor{},
	}
}

func (e *cliTestEnv) setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvAppleID, "dev@example.com")
	t.Setenv(config.EnvAppSpecificPassword, "abcd-efgh-ijkl-mnop")
	t.Setenv(config.EnvTeamID, "TEAM123456")
}

func (e *cliTestEnv) writeState(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(e.stateFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write state file: %v", err)
	}
}

func (e *cliTestEnv) readGitHubOutput(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.githubOutput)
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("read github output: %v", err)
	}
	return string(data)
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(notarytool.WithExecutor(env.exec))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
