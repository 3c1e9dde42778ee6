package main

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"notarycheck/internal/checker"
)

const (
	acceptedOutput = `Successfully received submission info
  createdDate: 2024-05-01T10:00:00.000Z
  id: 2efe2717-52ef-43a5-96dc-0797e4ca1041
  name: App.zip
  status: Accepted
`
	inProgressOutput = `Successfully received submission info
  id: 2efe2717-52ef-43a5-96dc-0797e4ca1041
  status: In Progress
`
	invalidOutput = `Successfully received submission info
  id: 2efe2717-52ef-43a5-96dc-0797e4ca1041
  status: Invalid
`
)

func TestCheckWithoutCredentialsFailsWithoutInvocation(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeState(t, "2efe2717-52ef-43a5-96dc-0797e4ca1041")

	out, _, err := runCLI(t, env, "check")
	if !errors.Is(err, checker.ErrMissingCredentials) {
		t.Fatalf("expected missing credentials error, got %v", err)
	}
	if env.exec.callCount() != 0 {
		t.Fatalf("expected no notarytool invocation, got %d", env.exec.callCount())
	}
	if out != "" {
		t.Fatalf("expected no marker on stdout, got %q", out)
	}
}

func TestCheckWithoutStateFileSkips(t *testing.T) {
	env := setupCLITestEnv(t)
	env.setCredentials(t)

	out, _, err := runCLI(t, env, "check")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	requireContains(t, out, "SKIPPED=true")
	if env.exec.callCount() != 0 {
		t.Fatal("expected no notarytool invocation")
	}
}

func TestCheckWithEmptyStateFileSkips(t *testing.T) {
	env := setupCLITestEnv(t)
	env.setCredentials(t)
	env.writeState(t, "  \n")

	out, stderr, err := runCLI(t, env, "check")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	requireContains(t, out, "SKIPPED=true")
	requireContains(t, stderr, "notarization ID is empty")
	if env.exec.callCount() != 0 {
		t.Fatal("expected no notarytool invocation")
	}
}

func TestCheckAcceptedWritesGitHubOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	env.setCredentials(t)
	env.writeState(t, "2efe2717-52ef-43a5-96dc-0797e4ca1041\n")
	t.Setenv("GITHUB_OUTPUT", env.githubOutput)
	if err := os.WriteFile(env.githubOutput, []byte("previous=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env.exec.output = acceptedOutput

	out, stderr, err := runCLI(t, env, "check")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	requireContains(t, out, "NOTARIZATION_ACCEPTED=true")
	if got := env.readGitHubOutput(t); got != "previous=1\naccepted=true\n" {
		t.Fatalf("unexpected github output %q", got)
	}
	if strings.Contains(stderr, "abcd-efgh-ijkl-mnop") {
		t.Fatal("password leaked to logs")
	}

	if env.exec.callCount() != 1 {
		t.Fatalf("expected one invocation, got %d", env.exec.callCount())
	}
	want := []string{"xcrun", "notarytool", "info", "2efe2717-52ef-43a5-96dc-0797e4ca1041",
		"--apple-id", "dev@example.com", "--password", "abcd-efgh-ijkl-mnop", "--team-id", "TEAM123456", "--verbose"}
	if got := env.exec.calls[0]; strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected invocation %v", got)
	}
}

func TestCheckAcceptedWithoutGitHubOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	env.setCredentials(t)
	env.writeState(t, "abc")
	env.exec.output = acceptedOutput

	out, _, err := runCLI(t, env, "check")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	requireContains(t, out, "NOTARIZATION_ACCEPTED=true")
	if _, err := os.Stat(env.githubOutput); !os.IsNotExist(err) {
		t.Fatalf("expected no github output file, stat err=%v", err)
	}
}

func TestCheckInProgressDoesNotWriteOutput(t *testing.T) {
	for name, output := range map[string]string{
		"in progress": inProgressOutput,
		"processing":  "  status: Processing\n",
	} {
		t.Run(name, func(t *testing.T) {
			env := setupCLITestEnv(t)
			env.setCredentials(t)
			env.writeState(t, "abc")
			t.Setenv("GITHUB_OUTPUT", env.githubOutput)
			env.exec.output = output

			out, _, err := runCLI(t, env, "check")
			if err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			requireContains(t, out, "STILL_PROCESSING=true")
			if got := env.readGitHubOutput(t); got != "" {
				t.Fatalf("expected no github output, got %q", got)
			}
		})
	}
}

func TestCheckTerminalFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	env.setCredentials(t)
	env.writeState(t, "abc")
	t.Setenv("GITHUB_OUTPUT", env.githubOutput)
	env.exec.output = invalidOutput

	out, stderr, err := runCLI(t, env, "check")
	if !errors.Is(err, checker.ErrTerminalFailure) {
		t.Fatalf("expected terminal failure, got %v", err)
	}
	requireContains(t, out, "TERMINAL_FAILURE=true")
	requireContains(t, stderr, "status: Invalid")
	if got := env.readGitHubOutput(t); got != "" {
		t.Fatalf("expected no github output, got %q", got)
	}
}

func TestCheckToolExitFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	env.setCredentials(t)
	env.writeState(t, "abc")
	env.exec.output = "Error: HTTP status code: 401. Unable to authenticate.\n"
	env.exec.err = &exec.ExitError{}

	out, stderr, err := runCLI(t, env, "check")
	if err == nil {
		t.Fatal("expected error for failed invocation")
	}
	if out != "" {
		t.Fatalf("expected no marker, got %q", out)
	}
	requireContains(t, stderr, "Unable to authenticate")
}

func TestCheckFlagsOverridePaths(t *testing.T) {
	env := setupCLITestEnv(t)
	env.setCredentials(t)
	custom := filepath.Join(env.dir, "custom_id")
	if err := os.WriteFile(custom, []byte("custom-id"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(env.dir, "custom_output")
	env.exec.output = acceptedOutput

	out, _, err := runCLI(t, env, "check", "--state-file", custom, "--github-output", target, "--json")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	var result checker.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode json output %q: %v", out, err)
	}
	if result.Outcome != checker.OutcomeAccepted || result.SubmissionID != "custom-id" || !result.OutputWritten {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Submission == nil || result.Submission.Name != "App.zip" {
		t.Fatalf("expected parsed submission, got %+v", result.Submission)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read custom output: %v", err)
	}
	if string(data) != "accepted=true\n" {
		t.Fatalf("unexpected custom output %q", data)
	}
}

func TestCheckUsesDotEnvCredentials(t *testing.T) {
	env := setupCLITestEnv(t)
	dotenv := "MANUAL_APPLE_ID=dotenv@example.com\nMANUAL_APPLE_ID_PASSWORD=secret\nMANUAL_APPLE_TEAM_ID=TEAMDOT\n"
	if err := os.WriteFile(filepath.Join(env.dir, ".env"), []byte(dotenv), 0o600); err != nil {
		t.Fatal(err)
	}
	env.writeState(t, "abc")
	env.exec.output = inProgressOutput

	if _, _, err := runCLI(t, env, "check"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if env.exec.callCount() != 1 {
		t.Fatalf("expected one invocation, got %d", env.exec.callCount())
	}
	requireContains(t, strings.Join(env.exec.calls[0], " "), "--apple-id dotenv@example.com --password secret --team-id TEAMDOT")
}
