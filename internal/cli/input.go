package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"
)

type inputSource string

const (
	sourceNone  inputSource = "none"
	sourceHelp  inputSource = "help"
	sourceStdin inputSource = "stdin"
	sourceArgs  inputSource = "args"
)

var helpArgs = []string{"-h", "help", "--help"}

// resolveInput picks the text to convert. Stdin with data wins; otherwise the
// arguments are concatenated with no separator, so "2d 3h" and "2d3h" match.
func resolveInput(ctx context.Context, stdin io.Reader, args []string) (string, inputSource, error) {
	if stdin != nil && hasInput(stdin, len(args) > 0) {
		data, err := readAll(ctx, stdin)
		if err != nil {
			return "", sourceNone, fmt.Errorf("read stdin: %w", err)
		}
		if strings.TrimSpace(data) != "" {
			return data, sourceStdin, nil
		}
	}

	if len(args) == 0 {
		return "", sourceNone, nil
	}
	if slices.Contains(helpArgs, strings.TrimSpace(args[0])) {
		return "", sourceHelp, nil
	}
	return strings.Join(args, ""), sourceArgs, nil
}

// hasInput reports whether r should be read as the conversion input.
// Readers that are not files (tests, wrappers) always count. When arguments
// were given, only a non-empty regular file beats them: an idle pipe left open
// by ssh, CI runners or cron would otherwise block forever.
func hasInput(r io.Reader, haveArgs bool) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	if term.IsTerminal(int(f.Fd())) {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	switch mode := info.Mode(); {
	case mode.IsRegular():
		return info.Size() > 0
	case mode&os.ModeCharDevice != 0:
		// Character devices such as /dev/null never hold piped input
		return false
	default:
		return !haveArgs
	}
}

// readAll reads r to EOF, giving up when ctx is cancelled so an interrupt
// while waiting on a pipe exits promptly.
func readAll(ctx context.Context, r io.Reader) (string, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(r)
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return string(res.data), res.err
	}
}
