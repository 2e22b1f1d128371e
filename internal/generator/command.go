package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	placeholderSrc = "{src}"
	placeholderOut = "{out}"

	maxStderr = 4 << 10
	waitDelay = 2 * time.Second // children that keep stdout open after a kill
)

// Command runs an external tool. Argv may reference {src} (the
// implementation path) and {out} (a temporary file the tool writes the
// diagram to). Without {out} the diagram is read from stdout.
type Command struct {
	Argv    []string
	Timeout time.Duration // 0 means no limit beyond ctx
	Dir     string        // working directory; empty inherits
	Env     []string      // extra KEY=VALUE entries
}

// CommandError describes a failed generator run.
type CommandError struct {
	Argv   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	var b strings.Builder
	b.WriteString("generator ")
	b.WriteString(strings.Join(e.Argv, " "))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString("\n")
		b.WriteString(s)
	}
	return b.String()
}

func (e *CommandError) Unwrap() error { return e.Err }

func (c Command) Fingerprint() string {
	return "command:" + strings.Join(c.Argv, "\x00")
}

func (c Command) Generate(ctx context.Context, sourcePath string) (string, error) {
	if len(c.Argv) == 0 {
		return "", ErrNoGenerator
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var outPath string
	if c.usesOut() {
		tmp, err := os.MkdirTemp("", "arcucheck-gen-*")
		if err != nil {
			return "", fmt.Errorf("generator temp dir: %w", err)
		}
		defer os.RemoveAll(tmp)
		outPath = filepath.Join(tmp, "implementation.puml")
	}
	argv := c.expand(sourcePath, outPath)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = waitDelay
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	var stdout bytes.Buffer
	stderr := limitedBuffer{max: maxStderr}
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", &CommandError{Argv: argv, Stderr: stderr.String(), Err: err}
	}

	if outPath == "" {
		return stdout.String(), nil
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("tool exited without writing %s", placeholderOut)
		}
		return "", &CommandError{Argv: argv, Stderr: stderr.String(), Err: err}
	}
	return string(data), nil
}

func (c Command) usesOut() bool {
	for _, a := range c.Argv {
		if strings.Contains(a, placeholderOut) {
			return true
		}
	}
	return false
}

func (c Command) expand(src, out string) []string {
	r := strings.NewReplacer(placeholderSrc, src, placeholderOut, out)
	argv := make([]string, len(c.Argv))
	for i, a := range c.Argv {
		argv[i] = r.Replace(a)
	}
	return argv
}

// limitedBuffer keeps the first max bytes and drops the rest.
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

func (b *limitedBuffer) String() string { return b.buf.String() }
