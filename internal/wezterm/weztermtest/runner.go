// Package weztermtest provides a scripted Runner for tests.
package weztermtest

import (
	"context"
	"strings"
	"sync"

	"github.com/codex-k8s/wezterm-mcp-server/internal/executil"
)

// Runner records commands and replays a scripted result.
type Runner struct {
	mu       sync.Mutex
	commands []string

	// Stdout is returned on success.
	Stdout string
	// Err is returned instead of a result when set.
	Err error
}

// Run records command and returns the scripted outcome.
func (r *Runner) Run(_ context.Context, command string) (executil.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, command)
	if r.Err != nil {
		return executil.Result{}, r.Err
	}
	return executil.Result{Stdout: r.Stdout}, nil
}

// Commands returns the recorded command strings.
func (r *Runner) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.commands))
	copy(out, r.commands)
	return out
}

// Calls returns the number of recorded commands.
func (r *Runner) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.commands)
}

// LastArgs has /bin/sh expand the last recorded command and returns the
// argv the shell would pass to the program.
func (r *Runner) LastArgs() ([]string, error) {
	r.mu.Lock()
	if len(r.commands) == 0 {
		r.mu.Unlock()
		return nil, nil
	}
	command := r.commands[len(r.commands)-1]
	r.mu.Unlock()

	res, err := executil.Runner{}.Run(context.Background(), `printf '%s\0' `+command)
	if err != nil {
		return nil, err
	}
	args := strings.Split(res.Stdout, "\x00")
	return args[:len(args)-1], nil
}
