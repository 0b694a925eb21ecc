package resolve

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vercheck-labs/vercheck/internal/software"
)

// Installed resolves the locally installed version of an entry.
type Installed struct {
	runner       Runner
	defaultShell string
	logger       *log.Logger
}

// InstalledOption configures an Installed resolver.
type InstalledOption func(*Installed)

// WithRunner replaces the process runner (useful for testing).
func WithRunner(r Runner) InstalledOption {
	return func(i *Installed) {
		i.runner = r
	}
}

// WithDefaultShell sets the interpreter used when an entry has no override.
func WithDefaultShell(shell string) InstalledOption {
	return func(i *Installed) {
		i.defaultShell = shell
	}
}

// WithInstalledLogger sets the logger used for debug output.
func WithInstalledLogger(l *log.Logger) InstalledOption {
	return func(i *Installed) {
		i.logger = l
	}
}

// NewInstalled creates an Installed resolver.
func NewInstalled(opts ...InstalledOption) *Installed {
	i := &Installed{
		runner: ShellRunner{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Resolve locates the executable, runs it with the entry's arguments, and
// extracts the version from trimmed stdout followed by trimmed stderr.
func (i *Installed) Resolve(ctx context.Context, sw software.Software) (string, error) {
	path, err := software.Locate(sw.Executable)
	if err != nil {
		return "", installedFailed(err)
	}

	shell := sw.ShellOverride
	if shell == "" {
		shell = i.defaultShell
	}
	cmd := commandFor(path, sw.Args, shell)
	i.logger.Debug("running installed version command", "software", sw.Name, "line", cmd.Line, "dir", cmd.Dir, "shell", cmd.Shell)

	out, err := i.runner.Run(ctx, cmd)
	if err != nil {
		return "", installedFailed(err)
	}
	if out.ExitCode != 0 {
		i.logger.Debug("installed version command exited non-zero", "software", sw.Name, "code", out.ExitCode)
	}

	combined := strings.TrimSpace(out.Stdout) + strings.TrimSpace(out.Stderr)
	version, err := software.ExtractVersion(combined, sw.InstalledRegex)
	if err != nil {
		return "", installedFailed(err)
	}
	return version, nil
}
