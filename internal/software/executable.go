package software

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Kind names an executable variant.
type Kind string

const (
	KindStatic  Kind = "static"
	KindDynamic Kind = "dynamic"
)

// ParseKind maps user input to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindStatic:
		return KindStatic, true
	case KindDynamic:
		return KindDynamic, true
	default:
		return "", false
	}
}

// Executable describes where the executable of an entry lives.
// It is implemented only by Static and Dynamic.
type Executable interface {
	Kind() Kind
	sealed()
}

// Static is a literal command name or path.
type Static struct {
	Command string
}

// Dynamic is a directory to scan and a regex selecting a file inside it.
type Dynamic struct {
	Directory string
	Regex     string
}

func (Static) Kind() Kind  { return KindStatic }
func (Dynamic) Kind() Kind { return KindDynamic }

func (Static) sealed()  {}
func (Dynamic) sealed() {}

// Locate resolves an executable to a single path.
//
// Static commands are returned unchanged without touching the filesystem.
// Dynamic executables list Directory and keep the entries whose name matches
// Regex. With exactly one match that entry wins; with several, the second in
// listing order is selected.
func Locate(exe Executable) (string, error) {
	switch e := exe.(type) {
	case Static:
		return e.Command, nil
	case Dynamic:
		return locateDynamic(e)
	default:
		return "", fmt.Errorf("%w: %T", errUnknownExecutable, exe)
	}
}

func locateDynamic(d Dynamic) (string, error) {
	info, err := os.Stat(d.Directory)
	if err != nil || !info.IsDir() {
		return "", &DirectoryNotFoundError{Directory: d.Directory}
	}

	re, err := regexp.Compile(d.Regex)
	if err != nil {
		return "", &InvalidPatternError{Pattern: d.Regex, Err: err}
	}

	entries, err := os.ReadDir(d.Directory)
	if err != nil {
		return "", &DirectoryNotFoundError{Directory: d.Directory}
	}

	var matches []string
	for _, entry := range entries {
		if re.MatchString(entry.Name()) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", &NoMatchingExecutableError{Directory: d.Directory, Pattern: d.Regex}
	case 1:
		return filepath.Join(d.Directory, matches[0]), nil
	default:
		// The first candidate is skipped on purpose.
		return filepath.Join(d.Directory, matches[1]), nil
	}
}
