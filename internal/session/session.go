package session

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vercheck-labs/vercheck/internal/software"
)

// ErrInvalidTransition is returned when an operation is not allowed in the
// session's current state.
var ErrInvalidTransition = errors.New("invalid session transition")

// State is a step in the session lifecycle.
type State int

const (
	AwaitingInstalledResolution State = iota
	AwaitingInstalledConfirmation
	AwaitingLatestResolution
	AwaitingLatestConfirmation
	Committed
	Abandoned
)

func (s State) String() string {
	switch s {
	case AwaitingInstalledResolution:
		return "awaiting installed resolution"
	case AwaitingInstalledConfirmation:
		return "awaiting installed confirmation"
	case AwaitingLatestResolution:
		return "awaiting latest resolution"
	case AwaitingLatestConfirmation:
		return "awaiting latest confirmation"
	case Committed:
		return "committed"
	case Abandoned:
		return "abandoned"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == Committed || s == Abandoned
}

// Field is the version being worked on.
type Field int

const (
	FieldInstalled Field = iota
	FieldLatest
)

func (f Field) String() string {
	if f == FieldLatest {
		return "latest"
	}
	return "installed"
}

// Resolver produces one version string for an entry.
type Resolver interface {
	Resolve(ctx context.Context, sw software.Software) (string, error)
}

// Attempt is one resolution try, kept for display and logging.
type Attempt struct {
	Field   Field
	Draft   software.Software
	Version string
	Err     error
}

// Result is what a committed session yields.
type Result struct {
	Software         software.Software
	InstalledVersion string
	LatestVersion    string
}

// Session tracks one add or edit interaction.
type Session struct {
	installed Resolver
	latest    Resolver

	state            State
	draft            software.Software
	installedVersion string
	latestVersion    string
	history          []Attempt
}

// New starts a session for draft in AwaitingInstalledResolution.
func New(draft software.Software, installed, latest Resolver) *Session {
	return &Session{
		installed: installed,
		latest:    latest,
		state:     AwaitingInstalledResolution,
		draft:     draft,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Draft returns the entry as currently configured.
func (s *Session) Draft() software.Software { return s.draft }

// Pending returns the field the session is working on. It is meaningful
// only in non-terminal states.
func (s *Session) Pending() Field {
	if s.state == AwaitingLatestResolution || s.state == AwaitingLatestConfirmation {
		return FieldLatest
	}
	return FieldInstalled
}

// InstalledVersion returns the confirmed or pending installed version.
func (s *Session) InstalledVersion() string { return s.installedVersion }

// History returns every resolution attempt in order.
func (s *Session) History() []Attempt { return slices.Clone(s.history) }

// Resolve runs the resolver for the pending field. On success the session
// waits for confirmation; on failure it stays put and the resolver's error
// is returned unchanged.
func (s *Session) Resolve(ctx context.Context) (string, error) {
	var r Resolver
	switch s.state {
	case AwaitingInstalledResolution:
		r = s.installed
	case AwaitingLatestResolution:
		r = s.latest
	default:
		return "", fmt.Errorf("%w: resolve while %s", ErrInvalidTransition, s.state)
	}

	field := s.Pending()
	version, err := r.Resolve(ctx, s.draft)
	s.history = append(s.history, Attempt{Field: field, Draft: s.draft, Version: version, Err: err})
	if err != nil {
		return "", err
	}

	if field == FieldInstalled {
		s.installedVersion = version
		s.state = AwaitingInstalledConfirmation
	} else {
		s.latestVersion = version
		s.state = AwaitingLatestConfirmation
	}
	return version, nil
}

// Confirm accepts the resolved version for the pending field.
func (s *Session) Confirm() error {
	switch s.state {
	case AwaitingInstalledConfirmation:
		s.state = AwaitingLatestResolution
	case AwaitingLatestConfirmation:
		s.state = Committed
	default:
		return fmt.Errorf("%w: confirm while %s", ErrInvalidTransition, s.state)
	}
	return nil
}

// Reconfigure replaces the draft and returns to resolving the pending field.
// Any unconfirmed result for that field is discarded.
func (s *Session) Reconfigure(draft software.Software) error {
	switch s.state {
	case AwaitingInstalledResolution, AwaitingInstalledConfirmation:
		s.installedVersion = ""
		s.state = AwaitingInstalledResolution
	case AwaitingLatestResolution, AwaitingLatestConfirmation:
		s.latestVersion = ""
		s.state = AwaitingLatestResolution
	default:
		return fmt.Errorf("%w: reconfigure while %s", ErrInvalidTransition, s.state)
	}
	s.draft = draft
	return nil
}

// Abandon ends the session without a result.
func (s *Session) Abandon() error {
	if s.state.Terminal() {
		return fmt.Errorf("%w: abandon while %s", ErrInvalidTransition, s.state)
	}
	s.state = Abandoned
	return nil
}

// Result returns the committed entry and both versions.
func (s *Session) Result() (Result, error) {
	if s.state != Committed {
		return Result{}, fmt.Errorf("%w: result while %s", ErrInvalidTransition, s.state)
	}
	return Result{
		Software:         s.draft,
		InstalledVersion: s.installedVersion,
		LatestVersion:    s.latestVersion,
	}, nil
}
