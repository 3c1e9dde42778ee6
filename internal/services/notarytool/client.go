package notarytool

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"notarycheck/internal/services"
)

const component = "notarytool"

// waitDelay bounds how long a killed process may hold its output pipes open.
const waitDelay = 2 * time.Second

// Credentials authenticates notarytool against the notary service.
type Credentials struct {
	AppleID  string
	Password string
	TeamID   string
}

// Missing lists the names of credential fields that are blank.
func (c Credentials) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.AppleID) == "" {
		missing = append(missing, "apple_id")
	}
	if strings.TrimSpace(c.Password) == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(c.TeamID) == "" {
		missing = append(missing, "team_id")
	}
	return missing
}

// Result captures one `notarytool info` invocation.
type Result struct {
	Output     string
	Status     Status
	Submission Submission
}

// StatusChecker defines the behaviour required by the status checker.
type StatusChecker interface {
	Info(ctx context.Context, submissionID string, creds Credentials) (Result, error)
}

// Executor abstracts command execution for testability. Implementations
// return the combined stdout and stderr of the process.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithVerbose toggles the --verbose flag on info requests.
func WithVerbose(verbose bool) Option {
	return func(c *Client) {
		c.verbose = verbose
	}
}

// Client wraps notarytool CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	verbose bool
	exec    Executor
}

// New constructs a notarytool client. binary is either xcrun or a direct path
// to notarytool. A non-positive timeout leaves invocations unbounded.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("notarytool binary required")
	}
	client := &Client{
		binary:  binary,
		verbose: true,
		exec:    commandExecutor{},
	}
	if timeoutSeconds > 0 {
		client.timeout = time.Duration(timeoutSeconds) * time.Second
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary returns the executable the client invokes.
func (c *Client) Binary() string {
	return c.binary
}

// Info requests the status of a submission and classifies the output. A
// non-zero exit reports ErrExternalTool; the captured output is available
// through OutputOf.
func (c *Client) Info(ctx context.Context, submissionID string, creds Credentials) (Result, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return Result{}, services.Wrap(services.ErrValidation, component, "info", "submission id required", nil)
	}
	if missing := creds.Missing(); len(missing) > 0 {
		return Result{}, services.Wrap(services.ErrConfiguration, component, "info",
			"missing credentials: "+strings.Join(missing, ", "), nil)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := c.InfoArgs(submissionID, creds)
	raw, err := c.exec.Run(runCtx, c.binary, args)
	output := string(raw)
	if err != nil {
		if c.timeout > 0 && ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return Result{Output: output}, &toolError{
				output: output,
				err:    services.Wrap(services.ErrTimeout, component, "info", fmt.Sprintf("no response within %s", c.timeout), err),
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{Output: output}, ctxErr
		}
		return Result{Output: output}, &toolError{
			output: output,
			err:    services.Wrap(services.ErrExternalTool, component, "info", describeExit(c.binary, err), err),
		}
	}

	return Result{
		Output:     output,
		Status:     Classify(output),
		Submission: ParseSubmission(output),
	}, nil
}

// InfoArgs returns the argument list for an info request.
func (c *Client) InfoArgs(submissionID string, creds Credentials) []string {
	args := make([]string, 0, 10)
	if !invokesNotarytoolDirectly(c.binary) {
		args = append(args, "notarytool")
	}
	args = append(args,
		"info", submissionID,
		"--apple-id", creds.AppleID,
		"--password", creds.Password,
		"--team-id", creds.TeamID,
	)
	if c.verbose {
		args = append(args, "--verbose")
	}
	return args
}

// RedactArgs returns a copy of args with the value following --password
// masked so it is safe to log.
func RedactArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out); i++ {
		switch {
		case out[i] == "--password" && i+1 < len(out):
			out[i+1] = "********"
			i++
		case strings.HasPrefix(out[i], "--password="):
			out[i] = "--password=********"
		}
	}
	return out
}

// OutputOf returns the tool output carried by an error from Info.
func OutputOf(err error) string {
	var te *toolError
	if errors.As(err, &te) {
		return te.output
	}
	return ""
}

type toolError struct {
	output string
	err    error
}

func (e *toolError) Error() string { return e.err.Error() }

func (e *toolError) Unwrap() error { return e.err }

func describeExit(binary string, err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("%s exited with status %d", filepath.Base(binary), exitErr.ExitCode())
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Sprintf("%s not found in PATH", filepath.Base(binary))
	}
	return fmt.Sprintf("%s failed", filepath.Base(binary))
}

func invokesNotarytoolDirectly(binary string) bool {
	base := strings.TrimSuffix(filepath.Base(binary), filepath.Ext(binary))
	return base == "notarytool"
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.WaitDelay = waitDelay
	return cmd.CombinedOutput()
}
