package resolve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/vercheck-labs/vercheck/internal/software"
)

// fakeRunner records commands and returns a canned output.
type fakeRunner struct {
	out   Output
	err   error
	calls []Command
}

func (f *fakeRunner) Run(_ context.Context, c Command) (Output, error) {
	f.calls = append(f.calls, c)
	return f.out, f.err
}

func TestInstalledResolve_CommandConstruction(t *testing.T) {
	tests := []struct {
		name         string
		sw           software.Software
		defaultShell string
		wantLine     string
		wantDir      string
		wantShell    string
	}{
		{
			name:     "no shell override",
			sw:       software.Software{Name: "a", Executable: software.Static{Command: "hermits"}, Args: "mollusc", InstalledRegex: "(.*)"},
			wantLine: "hermits mollusc",
			wantDir:  ".",
		},
		{
			name:      "shell override provided",
			sw:        software.Software{Name: "a", Executable: software.Static{Command: "villians"}, Args: "Dr. Gregory Herd", ShellOverride: "shadrac", InstalledRegex: "(.*)"},
			wantLine:  "villians Dr. Gregory Herd",
			wantDir:   ".",
			wantShell: "shadrac",
		},
		{
			name:         "empty override falls back to configured default",
			sw:           software.Software{Name: "a", Executable: software.Static{Command: "vacancy"}, Args: "bigger", ShellOverride: "", InstalledRegex: "(.*)"},
			defaultShell: "/bin/bash",
			wantLine:     "vacancy bigger",
			wantDir:      ".",
			wantShell:    "/bin/bash",
		},
		{
			name:     "no args",
			sw:       software.Software{Name: "a", Executable: software.Static{Command: "silence"}, InstalledRegex: "(.*)"},
			wantLine: "silence",
			wantDir:  ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{out: Output{Stdout: "out"}}
			r := NewInstalled(WithRunner(runner), WithDefaultShell(tt.defaultShell))

			if _, err := r.Resolve(context.Background(), tt.sw); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(runner.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(runner.calls))
			}
			got := runner.calls[0]
			if got.Line != tt.wantLine {
				t.Errorf("Line = %q, want %q", got.Line, tt.wantLine)
			}
			if got.Dir != tt.wantDir {
				t.Errorf("Dir = %q, want %q", got.Dir, tt.wantDir)
			}
			if got.Shell != tt.wantShell {
				t.Errorf("Shell = %q, want %q", got.Shell, tt.wantShell)
			}
		})
	}
}

func TestInstalledResolve_CombinesOutput(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		stderr string
		want   string
	}{
		{"stdout only", "  no shell override\n", "", "no shell override"},
		{"stderr only", "", "just stderr\n", "just stderr"},
		{"stdout then stderr", "with stderr\n", " Crikey!", "with stderrCrikey!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{out: Output{Stdout: tt.stdout, Stderr: tt.stderr}}
			r := NewInstalled(WithRunner(runner))
			sw := software.Software{Name: "a", Executable: software.Static{Command: "x"}, InstalledRegex: "^(.*)$"}

			got, err := r.Resolve(context.Background(), sw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstalledResolve_EmptyOutputFails(t *testing.T) {
	runner := &fakeRunner{}
	r := NewInstalled(WithRunner(runner))
	sw := software.Software{Name: "a", Executable: software.Static{Command: "silence"}, InstalledRegex: "v(.*)"}

	_, err := r.Resolve(context.Background(), sw)
	var re *Error
	if !errors.As(err, &re) || re.Step != StepInstalled {
		t.Fatalf("expected installed *Error, got %v", err)
	}
	if err.Error() != "Could not find match for regex '/v(.*)/' in text ''" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestInstalledResolve_NonZeroExitStillParsed(t *testing.T) {
	runner := &fakeRunner{out: Output{Stderr: "tool v3.1.4", ExitCode: 2}}
	r := NewInstalled(WithRunner(runner))
	sw := software.Software{Name: "a", Executable: software.Static{Command: "tool"}, InstalledRegex: "v(.*)"}

	got, err := r.Resolve(context.Background(), sw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "3.1.4" {
		t.Errorf("Resolve = %q, want %q", got, "3.1.4")
	}
}

func TestInstalledResolve_SpawnErrorPropagates(t *testing.T) {
	spawnErr := errors.New("spawn shadrac ENOENT")
	r := NewInstalled(WithRunner(&fakeRunner{err: spawnErr}))
	sw := software.Software{Name: "a", Executable: software.Static{Command: "x"}, InstalledRegex: "(.*)"}

	_, err := r.Resolve(context.Background(), sw)
	if !errors.Is(err, spawnErr) {
		t.Fatalf("expected spawn error, got %v", err)
	}
	if err.Error() != spawnErr.Error() {
		t.Errorf("message = %q, want %q", err.Error(), spawnErr.Error())
	}
}

func TestInstalledResolve_LocationFailure(t *testing.T) {
	runner := &fakeRunner{}
	r := NewInstalled(WithRunner(runner))
	dir := filepath.Join(t.TempDir(), "missing")
	sw := software.Software{Name: "a", Executable: software.Dynamic{Directory: dir, Regex: ".*"}, InstalledRegex: "(.*)"}

	_, err := r.Resolve(context.Background(), sw)
	var dnf *software.DirectoryNotFoundError
	if !errors.As(err, &dnf) {
		t.Fatalf("expected *DirectoryNotFoundError, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Error("runner should not be called when location fails")
	}
}

func TestInstalledResolve_DynamicRunsInDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tool-1.0", "tool-2.0"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#"), 0755); err != nil {
			t.Fatal(err)
		}
	}
	runner := &fakeRunner{out: Output{Stdout: "2.0"}}
	r := NewInstalled(WithRunner(runner))
	sw := software.Software{Name: "a", Executable: software.Dynamic{Directory: dir, Regex: "^tool-"}, Args: "--version", InstalledRegex: "(.*)"}

	if _, err := r.Resolve(context.Background(), sw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := runner.calls[0]
	if got.Dir != dir {
		t.Errorf("Dir = %q, want %q", got.Dir, dir)
	}
	if !strings.Contains(got.Line, "tool-2.0 --version") {
		t.Errorf("Line = %q, want it to run tool-2.0", got.Line)
	}
}

func TestInstalledResolve_EndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell script")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "good-command")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho \"$1\"\n"), 0755); err != nil {
		t.Fatal(err)
	}

	r := NewInstalled()
	sw := software.Software{
		Name:           "e2e",
		Executable:     software.Static{Command: script},
		Args:           "v1.0.0",
		InstalledRegex: "v(.*)",
	}

	got, err := r.Resolve(context.Background(), sw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1.0.0" {
		t.Errorf("Resolve = %q, want %q", got, "1.0.0")
	}
}

func TestInstalledResolve_EndToEndStderrAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell script")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "bad-command")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\" >&2\nexit 1\n"), 0755); err != nil {
		t.Fatal(err)
	}

	r := NewInstalled()
	sw := software.Software{
		Name:           "e2e",
		Executable:     software.Static{Command: script},
		Args:           "permission denied",
		InstalledRegex: "v(.*)",
	}

	_, err := r.Resolve(context.Background(), sw)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Could not find match for regex '/v(.*)/' in text 'permission denied'"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestInstalledResolve_DeadlineIsNotANoMatch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	r := NewInstalled()
	sw := software.Software{Name: "a", Executable: software.Static{Command: "sleep"}, Args: "3; echo v1.0.0", InstalledRegex: "v(.*)"}

	start := time.Now()
	_, err := r.Resolve(ctx, sw)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	var nm *software.NoVersionMatchError
	if errors.As(err, &nm) {
		t.Errorf("deadline reported as %v", nm)
	}
	if elapsed := time.Since(start); elapsed >= 2*time.Second {
		t.Errorf("Resolve took %v, want well under 3s", elapsed)
	}
}
