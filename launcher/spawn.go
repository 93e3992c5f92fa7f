package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// SpawnRequest describes a child process.
type SpawnRequest struct {
	Path   string
	Args   []string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// Spawner starts a process and waits for it to exit.
type Spawner interface {
	// Spawn returns the child's exit code. A non-zero exit is not an
	// error; err is set only when the process could not be run.
	Spawn(ctx context.Context, req SpawnRequest) (int, error)
}

// ExecSpawner runs processes with os/exec.
type ExecSpawner struct{}

func (ExecSpawner) Spawn(ctx context.Context, req SpawnRequest) (int, error) {
	cmd := exec.CommandContext(ctx, req.Path, req.Args...)
	cmd.Env = req.Env
	cmd.Stdout = req.Stdout
	cmd.Stderr = req.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// Terminated by a signal.
				code = 1
			}
			return code, nil
		}
		return 1, fmt.Errorf("spawn %s: %w", req.Path, err)
	}
	return 0, nil
}
