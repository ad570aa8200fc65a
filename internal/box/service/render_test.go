package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxmaker/boxmaker-web/internal/box/service"
	model "github.com/boxmaker/boxmaker-web/pkg/box"
	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

// writeTool writes a shell script standing in for the geometry tool
func writeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell tools are not available on windows")
	}
	path := filepath.Join(t.TempDir(), "boxtool.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestExecRendererPassesArguments(t *testing.T) {
	tool := writeTool(t, `out="$1"; shift; printf '%%PDF-1.4\n%s\n' "$*" > "$out"`)
	output := filepath.Join(t.TempDir(), "box.pdf")

	r, err := service.NewExecRenderer([]string{tool}, 5*time.Second, logger.Discard())
	require.NoError(t, err)

	args := []string{"10.0", "5.0", "3.0", "0.25", "0.1", "2.0", "false"}
	require.NoError(t, r.Render(context.Background(), output, args))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n"+strings.Join(args, " ")+"\n", string(data))
}

func TestExecRendererCommandPrefix(t *testing.T) {
	tool := writeTool(t, `printf '%%PDF-1.4\n%s\n' "$1" > "$2"`)
	output := filepath.Join(t.TempDir(), "box.pdf")

	r, err := service.NewExecRenderer([]string{"/bin/sh", tool, "com.example.Main"}, 5*time.Second, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, r.Render(context.Background(), output, []string{"1.0"}))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "com.example.Main")
}

func TestExecRendererExitStatus(t *testing.T) {
	tool := writeTool(t, `echo "bad dimensions" >&2; exit 3`)

	r, err := service.NewExecRenderer([]string{tool}, 5*time.Second, logger.Discard())
	require.NoError(t, err)

	err = r.Render(context.Background(), filepath.Join(t.TempDir(), "box.pdf"), nil)
	var toolErr *model.ToolError
	require.True(t, errors.As(err, &toolErr), "expected ToolError, got %v", err)
	assert.Equal(t, 3, toolErr.ExitCode)
	assert.Equal(t, "bad dimensions", toolErr.Stderr)
}

func TestExecRendererTimeout(t *testing.T) {
	tool := writeTool(t, `exec sleep 10`)

	r, err := service.NewExecRenderer([]string{tool}, 100*time.Millisecond, logger.Discard())
	require.NoError(t, err)

	start := time.Now()
	err = r.Render(context.Background(), filepath.Join(t.TempDir(), "box.pdf"), nil)
	assert.ErrorIs(t, err, model.ErrToolTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecRendererMissingExecutable(t *testing.T) {
	r, err := service.NewExecRenderer([]string{filepath.Join(t.TempDir(), "missing")}, time.Second, logger.Discard())
	require.NoError(t, err)

	err = r.Render(context.Background(), filepath.Join(t.TempDir(), "box.pdf"), nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrToolTimeout)
}

func TestNewExecRendererValidation(t *testing.T) {
	_, err := service.NewExecRenderer(nil, time.Second, logger.Discard())
	assert.Error(t, err)

	_, err = service.NewExecRenderer([]string{"java"}, 0, logger.Discard())
	assert.Error(t, err)
}
