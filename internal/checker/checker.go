package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"notarycheck/internal/cioutput"
	"notarycheck/internal/config"
	"notarycheck/internal/logging"
	"notarycheck/internal/services"
	"notarycheck/internal/services/notarytool"
	"notarycheck/internal/submission"
)

var (
	// ErrMissingCredentials reports that at least one credential is blank.
	ErrMissingCredentials = errors.New("notarization credentials missing")
	// ErrTerminalFailure reports a response that is neither accepted nor in progress.
	ErrTerminalFailure = errors.New("notarization terminal failure")
)

// AcceptedOutputKey is the CI output key written when a submission is accepted.
const AcceptedOutputKey = "accepted"

// Outcome summarizes a status poll.
type Outcome string

const (
	OutcomeSkipped    Outcome = "skipped"
	OutcomeAccepted   Outcome = "accepted"
	OutcomeInProgress Outcome = "in_progress"
	OutcomeFailed     Outcome = "failed"
	OutcomeError      Outcome = "error"
)

// Marker returns the KEY=true line printed for the outcome, or "" when the
// outcome has none.
func (o Outcome) Marker() string {
	switch o {
	case OutcomeAccepted:
		return "NOTARIZATION_ACCEPTED=true"
	case OutcomeInProgress:
		return "STILL_PROCESSING=true"
	case OutcomeFailed:
		return "TERMINAL_FAILURE=true"
	case OutcomeSkipped:
		return "SKIPPED=true"
	default:
		return ""
	}
}

// Result describes a completed poll.
type Result struct {
	Outcome       Outcome                `json:"outcome"`
	SubmissionID  string                 `json:"submission_id,omitempty"`
	Submission    *notarytool.Submission `json:"submission,omitempty"`
	OutputWritten bool                   `json:"output_written"`
	Reason        string                 `json:"reason,omitempty"`
}

// Option configures a Checker.
type Option func(*Checker)

// WithToolOutput sets where raw notarytool output is echoed when a poll fails.
func WithToolOutput(w io.Writer) Option {
	return func(c *Checker) {
		if w != nil {
			c.toolOutput = w
		}
	}
}

// Checker polls one submission.
type Checker struct {
	cfg        *config.Config
	client     notarytool.StatusChecker
	logger     *slog.Logger
	toolOutput io.Writer
}

// New builds a Checker. cfg must already be normalized by config.Load.
func New(cfg *config.Config, client notarytool.StatusChecker, logger *slog.Logger, opts ...Option) (*Checker, error) {
	if cfg == nil || client == nil {
		return nil, errors.New("checker requires config and notarytool client")
	}
	c := &Checker{
		cfg:        cfg,
		client:     client,
		logger:     logging.NewComponentLogger(logger, "checker"),
		toolOutput: io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run performs the poll. The error is nil for accepted, in-progress, and
// skipped outcomes.
func (c *Checker) Run(ctx context.Context) (Result, error) {
	logger := logging.WithContext(ctx, c.logger)

	if missing := c.cfg.MissingCredentials(); len(missing) > 0 {
		logging.ErrorWithContext(logger, "credentials missing", "credentials_missing",
			logging.Strings("missing", missing),
			logging.String(logging.FieldErrorHint, "export the MANUAL_APPLE_* variables or set [credentials] in the config file"),
		)
		return Result{Outcome: OutcomeError, Reason: "credentials missing"},
			fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	id, found, err := submission.Load(c.cfg.Paths.StateFile)
	if err != nil {
		logging.ErrorWithContext(logger, "read submission state failed", "state_read_failed",
			logging.String("state_file", c.cfg.Paths.StateFile),
			logging.Error(err),
		)
		return Result{Outcome: OutcomeError, Reason: "state file unreadable"}, err
	}
	if !found {
		logger.Info("no active notarization ID found; skipping", logging.String("state_file", c.cfg.Paths.StateFile))
		return Result{Outcome: OutcomeSkipped, Reason: "no active notarization ID"}, nil
	}
	if id == "" {
		logger.Info("notarization ID is empty; skipping", logging.String("state_file", c.cfg.Paths.StateFile))
		return Result{Outcome: OutcomeSkipped, Reason: "notarization ID is empty"}, nil
	}

	ctx = services.WithSubmissionID(ctx, id)
	logger = logging.WithContext(ctx, c.logger)
	logger.Info("checking notarization status")

	info, err := c.client.Info(ctx, id, c.credentials())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result{Outcome: OutcomeError, SubmissionID: id, Reason: "canceled"}, err
		}
		c.echoToolOutput(notarytool.OutputOf(err))
		logging.ErrorWithContext(logger, "notarytool invocation failed", "notarytool_failed",
			logging.String("error_category", services.Category(err)),
			logging.Error(err),
		)
		return Result{Outcome: OutcomeError, SubmissionID: id, Reason: "notarytool invocation failed"}, err
	}

	result := Result{SubmissionID: id, Submission: &info.Submission}
	attrs := []logging.Attr{logging.String("status", info.Submission.Status)}

	switch info.Status {
	case notarytool.StatusAccepted:
		result.Outcome = OutcomeAccepted
		wrote, err := cioutput.Append(c.cfg.Paths.GitHubOutput, AcceptedOutputKey, "true")
		if err != nil {
			logging.ErrorWithContext(logger, "write CI output failed", "ci_output_failed",
				logging.String("github_output", c.cfg.Paths.GitHubOutput),
				logging.Error(err),
			)
			result.Reason = "CI output not written"
			return result, err
		}
		result.OutputWritten = wrote
		logger.Info("notarization accepted", logging.Args(append(attrs, logging.Bool("ci_output_written", wrote))...)...)
		return result, nil
	case notarytool.StatusInProgress:
		result.Outcome = OutcomeInProgress
		logger.Info("notarization still processing", logging.Args(attrs...)...)
		return result, nil
	default:
		result.Outcome = OutcomeFailed
		status := info.Submission.Status
		if status == "" {
			status = "unrecognized output"
		}
		result.Reason = status
		c.echoToolOutput(info.Output)
		logging.ErrorWithContext(logger, "notarization terminal failure", "notarization_failed",
			append(attrs, logging.String(logging.FieldErrorHint, "run `xcrun notarytool log <id>` for the rejection details"))...)
		return result, fmt.Errorf("%w: %s", ErrTerminalFailure, status)
	}
}

func (c *Checker) credentials() notarytool.Credentials {
	return notarytool.Credentials{
		AppleID:  c.cfg.Credentials.AppleID,
		Password: c.cfg.Credentials.Password,
		TeamID:   c.cfg.Credentials.TeamID,
	}
}

func (c *Checker) echoToolOutput(output string) {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return
	}
	fmt.Fprintln(c.toolOutput, output)
}
