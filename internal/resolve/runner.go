package resolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Command is a shell command line to run in a working directory.
type Command struct {
	Line  string
	Dir   string
	Shell string // empty selects the platform default
}

// Output captures what a command wrote.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes commands. A non-zero exit status is reported through
// Output.ExitCode, not as an error. Failures to start and context
// cancellation are errors.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

const waitDelay = time.Second

// ShellRunner runs commands through a command interpreter.
type ShellRunner struct{}

// Run implements Runner.
func (ShellRunner) Run(ctx context.Context, c Command) (Output, error) {
	name, args := shellInvocation(c.Shell, c.Line)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = c.Dir
	// Children of the shell may hold the output pipes after it is killed.
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	out := Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("spawn %s: %w", name, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("spawn %s: %w", name, err)
	}
	return out, nil
}

// shellInvocation returns the interpreter and arguments for line.
func shellInvocation(shell, line string) (string, []string) {
	if shell == "" {
		shell = defaultShell()
	}
	base := strings.ToLower(filepath.Base(shell))
	if base == "cmd" || base == "cmd.exe" {
		return shell, []string{"/d", "/s", "/c", line}
	}
	return shell, []string{"-c", line}
}

func defaultShell() string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("ComSpec"); comspec != "" {
			return comspec
		}
		return "cmd.exe"
	}
	return "/bin/sh"
}

// commandFor builds the command that runs the executable at path with args.
// The working directory is the executable's directory.
func commandFor(path, args, shell string) Command {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	if dir != "." && runtime.GOOS != "windows" {
		name = "./" + name
	}
	name = quote(name)

	line := name
	if args != "" {
		line = name + " " + args
	}
	return Command{Line: line, Dir: dir, Shell: shell}
}

// quote leaves s bare only when every byte is in [A-Za-z0-9._/+-].
func quote(s string) string {
	if isShellSafe(s) {
		return s
	}
	if runtime.GOOS == "windows" {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSafe(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '/', c == '+', c == '-':
		default:
			return false
		}
	}
	return true
}
