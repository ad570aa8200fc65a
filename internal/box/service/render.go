package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	model "github.com/boxmaker/boxmaker-web/pkg/box"
	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

const (
	// maxCapturedOutput caps how much tool output is kept for errors and logs
	maxCapturedOutput = 4 << 10
	// waitDelay bounds how long we wait for output pipes after the tool is killed
	waitDelay = 2 * time.Second
)

// Renderer produces a box PDF at outputPath from the tool arguments
type Renderer interface {
	Render(ctx context.Context, outputPath string, args []string) error
}

// ExecRenderer runs the external geometry tool as a subprocess
type ExecRenderer struct {
	command []string
	timeout time.Duration
	log     *logger.Logger
}

// NewExecRenderer creates a renderer that runs command followed by the
// output path and box arguments. Each run is killed after timeout.
func NewExecRenderer(command []string, timeout time.Duration, log *logger.Logger) (*ExecRenderer, error) {
	if len(command) == 0 || command[0] == "" {
		return nil, errors.New("box tool command is empty")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid box tool timeout: %s", timeout)
	}
	return &ExecRenderer{
		command: append([]string(nil), command...),
		timeout: timeout,
		log:     log,
	}, nil
}

// Command returns the configured tool invocation
func (r *ExecRenderer) Command() []string {
	return append([]string(nil), r.command...)
}

// Render runs the tool and waits for it to exit. It returns
// model.ErrToolTimeout when the run exceeds the timeout and a
// *model.ToolError when the tool exits with a non-zero status.
func (r *ExecRenderer) Render(ctx context.Context, outputPath string, args []string) error {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	argv := make([]string, 0, len(r.command)+len(args))
	argv = append(argv, r.command[1:]...)
	argv = append(argv, outputPath)
	argv = append(argv, args...)

	cmd := exec.CommandContext(runCtx, r.command[0], argv...)
	cmd.WaitDelay = waitDelay

	stdout := &limitedBuffer{max: maxCapturedOutput}
	stderr := &limitedBuffer{max: maxCapturedOutput}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	r.log.Debug("Running box tool: %s %s", r.command[0], strings.Join(argv, " "))
	start := time.Now()
	err := cmd.Run()
	r.log.Debug("Box tool finished in %s", time.Since(start).Round(time.Millisecond))

	if out := strings.TrimSpace(stdout.String()); out != "" {
		r.log.Debug("Box tool output: %s", out)
	}

	if err == nil {
		return nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("%w after %s", model.ErrToolTimeout, r.timeout)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("box tool interrupted: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &model.ToolError{
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}

	return fmt.Errorf("failed to run box tool: %w", err)
}

// limitedBuffer keeps the first max bytes written and discards the rest
type limitedBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	return b.buf.String()
}
