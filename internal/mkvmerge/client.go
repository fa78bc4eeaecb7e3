package mkvmerge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"mkvmux/internal/logging"
)

// mkvmerge exit codes: 0 success, 1 completed with warnings, 2+ failure.
const (
	exitSuccess  = 0
	exitWarnings = 1
)

var versionBanner = regexp.MustCompile(`^mkvmerge`)

// ProcessError reports a failed or timed-out mkvmerge invocation. It keeps
// the exit code and both captured streams so callers can diagnose the
// failure without re-running the tool. A timeout carries exit code -1 and
// whatever partial output was captured before cancellation.
type ProcessError struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(e.Stdout)
	}
	if e.Err != nil {
		if detail == "" {
			return fmt.Sprintf("mkvmerge failed (exit %d): %v", e.ExitCode, e.Err)
		}
		return fmt.Sprintf("mkvmerge failed (exit %d): %v: %s", e.ExitCode, e.Err, detail)
	}
	return fmt.Sprintf("mkvmerge failed (exit %d): %s", e.ExitCode, detail)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Outcome captures one finished process invocation.
type Outcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (Outcome, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (Outcome, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	outcome := Outcome{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return outcome, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		outcome.ExitCode = exitErr.ExitCode()
		return outcome, nil
	}
	// Start failure or context cancellation; partial output still matters.
	outcome.ExitCode = -1
	return outcome, err
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

// WithTimeout bounds every invocation. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger attaches a logger; without one the client is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps mkvmerge CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// New constructs an mkvmerge client for the given binary path.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mkvmerge binary required")
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary returns the configured mkvmerge path.
func (c *Client) Binary() string { return c.binary }

// Logger returns the client's logger, a nop logger when none was attached.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Run invokes mkvmerge with the given arguments and applies the exit-code
// contract. Warnings (exit 1) are logged and the output is still returned.
func (c *Client) Run(ctx context.Context, args []string) (string, error) {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("running mkvmerge",
		logging.String("binary", c.binary),
		logging.Int("arg_count", len(args)),
	)

	outcome, err := c.exec.Run(runCtx, c.binary, args)
	if err != nil {
		procErr := &ProcessError{
			ExitCode: -1,
			Stdout:   outcome.Stdout,
			Stderr:   outcome.Stderr,
			Err:      err,
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			procErr.Err = fmt.Errorf("command timed out after %s: %w", c.timeout, context.DeadlineExceeded)
		}
		c.logger.Error("mkvmerge invocation failed", logging.Error(procErr))
		return "", procErr
	}

	switch {
	case outcome.ExitCode == exitSuccess:
		c.logger.Debug("mkvmerge completed successfully")
		return outcome.Stdout, nil
	case outcome.ExitCode == exitWarnings:
		c.logger.Warn("mkvmerge completed with warnings",
			logging.Int("exit_code", outcome.ExitCode),
			logging.String("stderr", strings.TrimSpace(outcome.Stderr)),
		)
		return outcome.Stdout, nil
	default:
		procErr := &ProcessError{
			ExitCode: outcome.ExitCode,
			Stdout:   outcome.Stdout,
			Stderr:   outcome.Stderr,
		}
		c.logger.Error("mkvmerge failed",
			logging.Int("exit_code", outcome.ExitCode),
			logging.String("stderr", strings.TrimSpace(outcome.Stderr)),
		)
		return "", procErr
	}
}

// Version verifies the binary answers -V with an mkvmerge banner and
// returns the banner line.
func (c *Client) Version(ctx context.Context) (string, error) {
	output, err := c.Run(ctx, []string{"-V"})
	if err != nil {
		return "", fmt.Errorf("verify mkvmerge: %w", err)
	}
	banner := strings.TrimSpace(output)
	if !versionBanner.MatchString(banner) {
		return "", fmt.Errorf("binary %q did not identify as mkvmerge: %q", c.binary, firstLine(banner))
	}
	return firstLine(banner), nil
}

// Identify runs JSON identification against path and decodes the result.
func (c *Client) Identify(ctx context.Context, path string) (Identification, error) {
	output, err := c.Run(ctx, []string{"--identify", "--identification-format", "json", path})
	if err != nil {
		return Identification{}, err
	}
	return ParseIdentification([]byte(output))
}

// Mux executes a fully built mkvmerge argument list and returns stdout.
func (c *Client) Mux(ctx context.Context, args []string) (string, error) {
	return c.Run(ctx, args)
}

// IsMatroska reports whether path identifies as a Matroska container.
func (c *Client) IsMatroska(ctx context.Context, path string) (bool, error) {
	ident, err := c.Identify(ctx, path)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(ident.Container.Type, "Matroska"), nil
}

// IsRecognized reports whether mkvmerge recognizes path's container.
func (c *Client) IsRecognized(ctx context.Context, path string) (bool, error) {
	ident, err := c.Identify(ctx, path)
	if err != nil {
		return false, err
	}
	return ident.Container.Recognized, nil
}

// IsSupported reports whether mkvmerge supports path's container.
func (c *Client) IsSupported(ctx context.Context, path string) (bool, error) {
	ident, err := c.Identify(ctx, path)
	if err != nil {
		return false, err
	}
	return ident.Container.Supported, nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
