package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lucrnz/seconds/internal/duration"
	"github.com/lucrnz/seconds/internal/version"
)

// execute runs a fresh root command with the given stdin and arguments and
// returns what it wrote to stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestConvertArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"compact expression", []string{"2d3h"}, "183600\n"},
		{"single unit", []string{"4d"}, "345600\n"},
		{"prose arguments", []string{"2", "days,", "and", "3", "hours"}, "183600\n"},
		{"seconds", []string{"183600"}, "2 days, 3 hours\n"},
		{"seconds with minutes", []string{"1125093"}, "13 days, 31 minutes, 33 seconds\n"},
		{"split digits join", []string{"18", "3600"}, "2 days, 3 hours\n"},
		{"garbage", []string{"whenever"}, "0\n"},
		{"zero seconds", []string{"0"}, "\n"},
		{"dash in later argument", []string{"2d", "-3h"}, "183600\n"},
		{"flag-like text after input", []string{"1h", "--strict"}, "3600\n"},
		{"leading dash after terminator", []string{"--", "-5m"}, "300\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestConvertStdin(t *testing.T) {
	t.Run("seconds", func(t *testing.T) {
		stdout, _, err := execute(t, "1125093\n")
		require.NoError(t, err)
		assert.Equal(t, "13 days, 31 minutes, 33 seconds\n", stdout)
	})

	t.Run("expression", func(t *testing.T) {
		stdout, _, err := execute(t, "2 days, and 3 hours\n")
		require.NoError(t, err)
		assert.Equal(t, "183600\n", stdout)
	})

	t.Run("stdin wins over args", func(t *testing.T) {
		stdout, _, err := execute(t, "1d", "help")
		require.NoError(t, err)
		assert.Equal(t, "86400\n", stdout)
	})

	t.Run("blank stdin falls back to args", func(t *testing.T) {
		stdout, _, err := execute(t, "  \n", "1h")
		require.NoError(t, err)
		assert.Equal(t, "3600\n", stdout)
	})
}

func TestHelp(t *testing.T) {
	for _, args := range [][]string{{"help"}, {"-h"}, {"--help"}, {" help "}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			stdout, _, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, "seconds: convert days, hours, and minutes to seconds")
			assert.Contains(t, stdout, "Usage: seconds [Xw[Xd[Xh[Xm]]]] | [seconds]")
			assert.Contains(t, stdout, "seconds 5d2h3m => 439380")
			assert.Contains(t, stdout, "seconds 4d => 345600")
			assert.Contains(t, stdout, "--strict")
		})
	}
}

func TestNoInput(t *testing.T) {
	stdout, _, err := execute(t, "")
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Contains(t, stdout, "Usage: seconds")
}

func TestStrict(t *testing.T) {
	stdout, _, err := execute(t, "", "--strict", "2d3h")
	require.NoError(t, err)
	assert.Equal(t, "183600\n", stdout)

	_, _, err = execute(t, "", "--strict", "2d;3h")
	var serr *duration.SyntaxError
	require.True(t, errors.As(err, &serr), "got %v", err)

	_, _, err = execute(t, "", "--strict", "nothing")
	assert.Error(t, err)
}

func TestCompact(t *testing.T) {
	stdout, _, err := execute(t, "", "-c", "183600")
	require.NoError(t, err)
	assert.Equal(t, "2d3h\n", stdout)

	stdout, _, err = execute(t, "", "--compact", "604800")
	require.NoError(t, err)
	assert.Equal(t, "1w\n", stdout)

	_, _, err = execute(t, "", "--compact", strings.Repeat("9", 25))
	assert.ErrorIs(t, err, duration.ErrOverflow)
}

func TestComma(t *testing.T) {
	stdout, _, err := execute(t, "", "--comma", "10w")
	require.NoError(t, err)
	assert.Equal(t, "6,048,000\n", stdout)

	// Grouping only applies to seconds results
	stdout, _, err = execute(t, "", "--comma", "60")
	require.NoError(t, err)
	assert.Equal(t, "1 minute\n", stdout)
}

func TestOutputJSON(t *testing.T) {
	stdout, _, err := execute(t, "", "-o", "json", "2d3h")
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(stdout), &r))
	assert.Equal(t, "2d3h", r.Input)
	assert.Equal(t, "parse", r.Mode)
	assert.Equal(t, "183600", r.Seconds)
	assert.Equal(t, "183600", r.Text)
	require.Len(t, r.Quantities, 2)
	assert.Equal(t, quantityReport{Count: "2", Unit: "d"}, r.Quantities[0])
	assert.Equal(t, quantityReport{Count: "3", Unit: "h"}, r.Quantities[1])
}

func TestOutputYAML(t *testing.T) {
	stdout, _, err := execute(t, "183600\n", "--output", "yaml")
	require.NoError(t, err)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &r))
	assert.Equal(t, "183600", r.Input)
	assert.Equal(t, "format", r.Mode)
	assert.Equal(t, "183600", r.Seconds)
	assert.Equal(t, "2 days, 3 hours", r.Text)
	assert.Empty(t, r.Quantities)
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "", "-o", "xml", "1d")
	assert.ErrorContains(t, err, "invalid output format: xml")

	_, _, err = execute(t, "", "--log-level", "chatty", "1d")
	assert.ErrorContains(t, err, "configure logging")

	_, _, err = execute(t, "", "--log-format", "xml", "1d")
	assert.ErrorContains(t, err, "unsupported log format")

	stdout, _, err := execute(t, "", "--bogus", "1d")
	assert.Error(t, err)
	assert.Contains(t, stdout, "Usage: seconds")
}

func TestDebugLogging(t *testing.T) {
	stdout, stderr, err := execute(t, "", "--log-level", "debug", "2d3h")
	require.NoError(t, err)
	assert.Equal(t, "183600\n", stdout)
	assert.Contains(t, stderr, "msg=input_resolved")
	assert.Contains(t, stderr, "source=args")
	assert.Contains(t, stderr, "msg=dispatch")
	assert.Contains(t, stderr, "mode=parse")
	assert.Contains(t, stderr, "unit=d")
}

func TestDefaultLoggingIsQuiet(t *testing.T) {
	_, stderr, err := execute(t, "", "whenever")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version.Print())
}

func TestResolveInput(t *testing.T) {
	ctx := context.Background()

	input, src, err := resolveInput(ctx, strings.NewReader(""), []string{"1d", "2h"})
	require.NoError(t, err)
	assert.Equal(t, sourceArgs, src)
	assert.Equal(t, "1d2h", input)

	_, src, err = resolveInput(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, sourceNone, src)

	input, src, err = resolveInput(ctx, strings.NewReader("5m\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, sourceStdin, src)
	assert.Equal(t, "5m\n", input)
}

func TestResolveInputCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never returns stands in for an idle pipe
	r, w := io.Pipe()
	defer w.Close()

	_, _, err := resolveInput(ctx, r, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveInputFromFiles(t *testing.T) {
	t.Run("idle pipe does not hide args", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		input, src, err := resolveInput(ctx, r, []string{"2d"})
		require.NoError(t, err)
		assert.Equal(t, sourceArgs, src)
		assert.Equal(t, "2d", input)
	})

	t.Run("pipe is read without args", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()

		_, err = w.WriteString("5m\n")
		require.NoError(t, err)
		require.NoError(t, w.Close())

		input, src, err := resolveInput(context.Background(), r, nil)
		require.NoError(t, err)
		assert.Equal(t, sourceStdin, src)
		assert.Equal(t, "5m\n", input)
	})

	t.Run("redirected file wins over args", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.txt")
		require.NoError(t, os.WriteFile(path, []byte("1h\n"), 0o644))
		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		input, src, err := resolveInput(context.Background(), f, []string{"2d"})
		require.NoError(t, err)
		assert.Equal(t, sourceStdin, src)
		assert.Equal(t, "1h\n", input)
	})

	t.Run("empty file falls back to args", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		input, src, err := resolveInput(context.Background(), f, []string{"2d"})
		require.NoError(t, err)
		assert.Equal(t, sourceArgs, src)
		assert.Equal(t, "2d", input)
	})
}

func TestExitCode(t *testing.T) {
	ctx := context.Background()

	var stderr bytes.Buffer
	assert.Equal(t, 0, exitCode(ctx, nil, &stderr))
	assert.Empty(t, stderr.String())

	assert.Equal(t, 1, exitCode(ctx, ErrNoInput, &stderr))
	assert.Empty(t, stderr.String(), "help was already printed")

	assert.Equal(t, 1, exitCode(ctx, errors.New("invalid output format: xml"), &stderr))
	assert.Equal(t, "invalid output format: xml\n", stderr.String())

	stderr.Reset()
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Equal(t, 130, exitCode(cancelled, context.Canceled, &stderr))
	assert.Contains(t, stderr.String(), "Interrupted")
}
