package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/vercheck-labs/vercheck/internal/catalog"
	"github.com/vercheck-labs/vercheck/internal/software"
	"github.com/vercheck-labs/vercheck/internal/validate"
)

// ErrAbandoned is returned by Run when the user gives up on the entry.
var ErrAbandoned = errors.New("abandoned without saving")

// Question labels, shared with callers that redisplay answers.
const (
	LabelName           = "Name"
	LabelType           = "Executable type"
	LabelCommand        = "Command"
	LabelDirectory      = "Directory"
	LabelRegex          = "Executable regex"
	LabelArgs           = "Arguments"
	LabelShellOverride  = "Shell override"
	LabelInstalledRegex = "Installed version regex"
	LabelURL            = "URL"
	LabelLatestRegex    = "Latest version regex"
)

const (
	choiceConfirm     = "Confirm"
	choiceReconfigure = "Reconfigure"
	choiceAbandon     = "Abandon"
)

// Options configures Run.
type Options struct {
	Installed Resolver
	Latest    Resolver
	// Catalog is the snapshot used to reject names already taken.
	Catalog []software.Software
	// Existing is the entry being edited, or nil for an add. Its values
	// are offered as defaults.
	Existing *software.Software
	Logger   *log.Logger
}

// Run asks for an entry's fields, resolves both versions, and loops on
// confirmation or reconfiguration until the user commits or abandons.
func Run(ctx context.Context, p Prompter, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var draft software.Software
	except := ""
	if opts.Existing != nil {
		draft = *opts.Existing
		except = opts.Existing.Name
	}

	name, err := p.Ask(LabelName, draft.Name, func(v string) error {
		if v == "" {
			return &software.ConstructionError{Message: "Name must be non-empty"}
		}
		if catalog.NameInUse(opts.Catalog, v, except) {
			return &validate.Error{Rule: validate.NameInUse, Value: v}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	draft.Name = name

	if draft, err = askInstalled(p, draft); err != nil {
		return Result{}, err
	}
	if draft, err = software.New(draft); err != nil {
		return Result{}, err
	}

	s := New(draft, opts.Installed, opts.Latest)
	for !s.State().Terminal() {
		field := s.Pending()

		switch s.State() {
		case AwaitingInstalledResolution, AwaitingLatestResolution:
			version, err := s.Resolve(ctx)
			if err == nil {
				logger.Debug("resolved version", "software", draft.Name, "field", field, "version", version)
				continue
			}
			logger.Debug("resolution failed", "software", draft.Name, "field", field, "err", err)

			label := fmt.Sprintf("Could not resolve %s version: %v", field, err)
			idx, err := p.Choose(label, []string{choiceReconfigure, choiceAbandon}, 0)
			if err != nil {
				return Result{}, err
			}
			if idx == 1 {
				_ = s.Abandon()
				continue
			}
			if err := reconfigure(p, s); err != nil {
				return Result{}, err
			}

		case AwaitingInstalledConfirmation, AwaitingLatestConfirmation:
			version := s.installedVersion
			if field == FieldLatest {
				version = s.latestVersion
			}
			label := fmt.Sprintf("Resolved %s version %s", field, version)
			idx, err := p.Choose(label, []string{choiceConfirm, choiceReconfigure, choiceAbandon}, 0)
			if err != nil {
				return Result{}, err
			}
			switch idx {
			case 0:
				_ = s.Confirm()
				if s.State() == AwaitingLatestResolution {
					next, err := askLatest(p, s.Draft())
					if err != nil {
						return Result{}, err
					}
					_ = s.Reconfigure(next)
				}
			case 1:
				if err := reconfigure(p, s); err != nil {
					return Result{}, err
				}
			default:
				_ = s.Abandon()
			}
		}
	}

	if s.State() == Abandoned {
		logger.Debug("session abandoned", "software", draft.Name, "attempts", len(s.History()))
		return Result{}, ErrAbandoned
	}
	return s.Result()
}

// reconfigure redisplays the answers that stay fixed for the pending field
// and asks the rest again.
func reconfigure(p Prompter, s *Session) error {
	draft := s.Draft()
	p.Redisplay(LabelName, draft.Name)

	var err error
	if s.Pending() == FieldInstalled {
		draft, err = askInstalled(p, draft)
	} else {
		redisplayInstalled(p, draft)
		p.Redisplay("Installed version", s.InstalledVersion())
		draft, err = askLatest(p, draft)
	}
	if err != nil {
		return err
	}
	return s.Reconfigure(draft)
}

func askInstalled(p Prompter, draft software.Software) (software.Software, error) {
	kinds := []string{string(software.KindStatic), string(software.KindDynamic)}
	def := 0
	if _, ok := draft.Executable.(software.Dynamic); ok {
		def = 1
	}
	idx, err := p.Choose(LabelType, kinds, def)
	if err != nil {
		return draft, err
	}

	if idx == 1 {
		prev, _ := draft.Executable.(software.Dynamic)
		dir, err := p.Ask(LabelDirectory, prev.Directory, nil)
		if err != nil {
			return draft, err
		}
		re, err := p.Ask(LabelRegex, prev.Regex, checkPattern)
		if err != nil {
			return draft, err
		}
		draft.Executable = software.Dynamic{Directory: dir, Regex: re}
	} else {
		prev, _ := draft.Executable.(software.Static)
		cmd, err := p.Ask(LabelCommand, prev.Command, nil)
		if err != nil {
			return draft, err
		}
		draft.Executable = software.Static{Command: cmd}
	}

	if draft.Args, err = p.Ask(LabelArgs, draft.Args, nil); err != nil {
		return draft, err
	}
	if draft.ShellOverride, err = p.Ask(LabelShellOverride, draft.ShellOverride, nil); err != nil {
		return draft, err
	}
	if draft.InstalledRegex, err = p.Ask(LabelInstalledRegex, draft.InstalledRegex, checkPattern); err != nil {
		return draft, err
	}
	return draft, nil
}

func askLatest(p Prompter, draft software.Software) (software.Software, error) {
	var err error
	if draft.URL, err = p.Ask(LabelURL, draft.URL, nil); err != nil {
		return draft, err
	}
	if draft.LatestRegex, err = p.Ask(LabelLatestRegex, draft.LatestRegex, checkPattern); err != nil {
		return draft, err
	}
	return draft, nil
}

func redisplayInstalled(p Prompter, draft software.Software) {
	switch e := draft.Executable.(type) {
	case software.Static:
		p.Redisplay(LabelType, string(software.KindStatic))
		p.Redisplay(LabelCommand, e.Command)
	case software.Dynamic:
		p.Redisplay(LabelType, string(software.KindDynamic))
		p.Redisplay(LabelDirectory, e.Directory)
		p.Redisplay(LabelRegex, e.Regex)
	}
	p.Redisplay(LabelArgs, draft.Args)
	p.Redisplay(LabelShellOverride, draft.ShellOverride)
	p.Redisplay(LabelInstalledRegex, draft.InstalledRegex)
}

func checkPattern(v string) error {
	if _, err := regexp.Compile(v); err != nil {
		return &software.InvalidPatternError{Pattern: v, Err: err}
	}
	return nil
}
