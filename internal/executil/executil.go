package executil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Default execution bounds.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultMaxOutput = 1024 * 1024
	DefaultShell     = "/bin/sh"
)

var (
	// ErrTimeout is returned when a command outlives its timeout.
	ErrTimeout = errors.New("command timed out")
	// ErrOutputLimit is returned when captured output exceeds the configured cap.
	ErrOutputLimit = errors.New("maxBuffer exceeded")
)

// waitDelay bounds how long Run waits for grandchildren holding the output pipes after a kill.
const waitDelay = 2 * time.Second

// Result holds captured output of a successful command.
type Result struct {
	// Stdout is the captured standard output.
	Stdout string
	// Stderr is the captured standard error.
	Stderr string
}

// ExitError reports a command that exited with a non-zero status.
type ExitError struct {
	// Command is the executed shell command.
	Command string
	// Code is the process exit code.
	Code int
	// Stderr is the captured standard error.
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("Command failed (exit code %d): %s", e.Code, e.Command)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

// Runner executes shell commands with a wall-clock timeout and an output cap.
type Runner struct {
	// Shell is the interpreter used as `<shell> -c <command>`.
	Shell string
	// Timeout bounds a single execution.
	Timeout time.Duration
	// MaxOutput caps combined stdout and stderr in bytes.
	MaxOutput int
	// Env adds environment variables for the child.
	Env map[string]string
}

// Run executes command through the shell and returns its captured output.
func (r Runner) Run(ctx context.Context, command string) (Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxOutput := r.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	shell := strings.TrimSpace(r.Shell)
	if shell == "" {
		shell = DefaultShell
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, shell, "-c", command)
	cmd.WaitDelay = waitDelay
	cmd.Env = os.Environ()
	for key, value := range r.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	capture := &capture{limit: maxOutput, onOverflow: cancel}
	cmd.Stdout = capture.writer(&capture.stdout)
	cmd.Stderr = capture.writer(&capture.stderr)

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("start command: %w", err)
	}
	err := cmd.Wait()

	if capture.overflowed() {
		return Result{}, fmt.Errorf("%w: output exceeds %d bytes", ErrOutputLimit, maxOutput)
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Result{}, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, fmt.Errorf("command canceled: %w", ctxErr)
	}

	stdout, stderr := capture.strings()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, &ExitError{Command: command, Code: exitErr.ExitCode(), Stderr: stderr}
		}
		return Result{}, fmt.Errorf("run command: %w", err)
	}
	return Result{Stdout: stdout, Stderr: stderr}, nil
}

// capture collects stdout and stderr under one shared byte budget.
type capture struct {
	mu         sync.Mutex
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	total      int
	limit      int
	overflow   bool
	onOverflow func()
}

type captureWriter struct {
	c   *capture
	buf *bytes.Buffer
}

func (c *capture) writer(buf *bytes.Buffer) *captureWriter {
	return &captureWriter{c: c, buf: buf}
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	if w.c.overflow {
		return 0, ErrOutputLimit
	}
	if w.c.total+len(p) > w.c.limit {
		w.c.overflow = true
		if w.c.onOverflow != nil {
			w.c.onOverflow()
		}
		return 0, ErrOutputLimit
	}
	w.c.total += len(p)
	return w.buf.Write(p)
}

func (c *capture) overflowed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overflow
}

func (c *capture) strings() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stdout.String(), c.stderr.String()
}
