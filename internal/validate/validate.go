// Package validate decides whether a set of supplied fields describes a
// constructible software entry, and builds it.
//
// Fields mirror command-line flags: a nil pointer means "not supplied", a
// pointer to "" means "supplied empty". Compatibility rules are checked in a
// fixed order so that input breaking several rules always reports the same
// one.
package validate

import (
	"github.com/vercheck-labs/vercheck/internal/catalog"
	"github.com/vercheck-labs/vercheck/internal/software"
)

// Mode is the catalog operation being validated.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

// Fields holds user-supplied values. Nil means absent.
type Fields struct {
	Name           *string
	Type           *string
	Command        *string
	Directory      *string
	Regex          *string
	Args           *string
	ShellOverride  *string
	InstalledRegex *string
	URL            *string
	LatestRegex    *string
}

// Empty reports whether no field was supplied.
func (f Fields) Empty() bool {
	for _, p := range []*string{
		f.Name, f.Type, f.Command, f.Directory, f.Regex,
		f.Args, f.ShellOverride, f.InstalledRegex, f.URL, f.LatestRegex,
	} {
		if p != nil {
			return false
		}
	}
	return true
}

// Request is one add or edit invocation.
type Request struct {
	Mode   Mode
	Silent bool
	// ExistingName is the entry being edited; nil when the positional
	// argument was not given.
	ExistingName *string
	Fields       Fields
}

// Result is a validated request ready to be resolved.
type Result struct {
	Software software.Software
	// Index of the entry being replaced, or -1 for an add.
	Index int
}

// Validate checks req against the catalog snapshot and returns the index of
// the entry being edited (-1 for an add).
func Validate(req Request, list []software.Software) (int, error) {
	f := req.Fields

	if req.Silent && f.Empty() {
		return -1, &Error{Rule: NoOptions}
	}

	except := ""
	if req.Mode == ModeEdit && req.ExistingName != nil {
		except = *req.ExistingName
	}
	if f.Name != nil && catalog.NameInUse(list, *f.Name, except) {
		return -1, &Error{Rule: NameInUse, Value: *f.Name}
	}

	index := -1
	var existing software.Executable
	if req.Mode == ModeEdit {
		if req.ExistingName == nil {
			return -1, &Error{Rule: NotEnoughPositionalArguments}
		}
		index = catalog.IndexOf(list, *req.ExistingName)
		if index < 0 {
			return -1, &Error{Rule: SoftwareNotFound, Value: *req.ExistingName}
		}
		existing = list[index].Executable
	}

	if _, err := checkExecutable(f, existing); err != nil {
		return -1, err
	}
	return index, nil
}

// checkExecutable applies the executable compatibility rules and returns the
// kind of executable the request describes.
func checkExecutable(f Fields, existing software.Executable) (software.Kind, error) {
	var requested software.Kind
	if f.Type != nil {
		k, ok := software.ParseKind(*f.Type)
		if !ok {
			return "", &Error{Rule: InvalidType, Value: *f.Type}
		}
		requested = k
	}

	hasCommand := f.Command != nil
	hasDirectory := f.Directory != nil
	hasRegex := f.Regex != nil

	switch {
	case requested == software.KindStatic && hasDirectory:
		return "", &Error{Rule: IncompatibleDirectoryWithStaticType}
	case requested == software.KindStatic && hasRegex:
		return "", &Error{Rule: IncompatibleRegexWithStaticType}
	case requested == software.KindDynamic && hasCommand:
		return "", &Error{Rule: IncompatibleCommandWithDynamicType}
	}

	var existingKind software.Kind
	if existing != nil {
		existingKind = existing.Kind()
	}
	if requested == "" {
		switch {
		case existingKind == software.KindStatic && hasDirectory:
			return "", &Error{Rule: IncompatibleDirectoryWithStaticExecutable}
		case existingKind == software.KindStatic && hasRegex:
			return "", &Error{Rule: IncompatibleRegexWithStaticExecutable}
		case existingKind == software.KindDynamic && hasCommand:
			return "", &Error{Rule: IncompatibleCommandWithDynamicExecutable}
		}
	}

	switch {
	case hasCommand && hasDirectory:
		return "", &Error{Rule: IncompatibleCommandWithDirectory}
	case hasCommand && hasRegex:
		return "", &Error{Rule: IncompatibleCommandWithRegex}
	}

	kind := effectiveKind(requested, existingKind, f)
	inherit := requested == "" && existingKind == kind

	if requested == software.KindDynamic && !hasDirectory {
		return "", &Error{Rule: NoDirectoryForDynamic}
	}
	if kind == software.KindDynamic {
		dirAvailable := hasDirectory || inherit
		regexAvailable := hasRegex || inherit
		if !dirAvailable || !regexAvailable {
			return "", &Error{Rule: NoDirectoryForRegex}
		}
	}
	if kind == software.KindStatic && !hasCommand && !inherit {
		return "", &Error{Rule: NoCommandForStatic}
	}
	return kind, nil
}

// effectiveKind is the kind the entry ends up with: the requested type, else
// the existing executable's kind, else whatever the supplied fields imply.
func effectiveKind(requested, existing software.Kind, f Fields) software.Kind {
	if requested != "" {
		return requested
	}
	if existing != "" {
		return existing
	}
	if f.Directory != nil || f.Regex != nil {
		return software.KindDynamic
	}
	return software.KindStatic
}

// Build validates req and merges its fields over the edited entry (or an
// empty entry for an add).
func Build(req Request, list []software.Software) (Result, error) {
	index, err := Validate(req, list)
	if err != nil {
		return Result{}, err
	}

	var base *software.Software
	if index >= 0 {
		base = &list[index]
	}
	sw, err := Apply(base, req.Fields)
	if err != nil {
		return Result{}, err
	}
	return Result{Software: sw, Index: index}, nil
}

// Apply merges f over base and constructs the resulting entry. base may be
// nil. Apply assumes f has passed Validate.
func Apply(base *software.Software, f Fields) (software.Software, error) {
	var next software.Software
	var existing software.Executable
	if base != nil {
		next = *base
		existing = base.Executable
	}

	var requested, existingKind software.Kind
	if f.Type != nil {
		requested, _ = software.ParseKind(*f.Type)
	}
	if existing != nil {
		existingKind = existing.Kind()
	}

	switch effectiveKind(requested, existingKind, f) {
	case software.KindDynamic:
		var d software.Dynamic
		if prev, ok := existing.(software.Dynamic); ok && requested == "" {
			d = prev
		}
		set(&d.Directory, f.Directory)
		set(&d.Regex, f.Regex)
		next.Executable = d
	default:
		var s software.Static
		if prev, ok := existing.(software.Static); ok && requested == "" {
			s = prev
		}
		set(&s.Command, f.Command)
		next.Executable = s
	}

	set(&next.Name, f.Name)
	set(&next.Args, f.Args)
	set(&next.ShellOverride, f.ShellOverride)
	set(&next.InstalledRegex, f.InstalledRegex)
	set(&next.URL, f.URL)
	set(&next.LatestRegex, f.LatestRegex)

	return software.New(next)
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
