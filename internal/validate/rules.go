package validate

import (
	"errors"
	"fmt"
)

// Rule identifies a validation failure. Rules are evaluated in declaration
// order and the first violation is reported.
type Rule string

const (
	NoOptions                                 Rule = "NoOptions"
	NameInUse                                 Rule = "NameInUse"
	NotEnoughPositionalArguments              Rule = "NotEnoughPositionalArguments"
	SoftwareNotFound                          Rule = "SoftwareNotFound"
	InvalidType                               Rule = "InvalidType"
	IncompatibleDirectoryWithStaticType       Rule = "IncompatibleDirectoryWithStaticType"
	IncompatibleRegexWithStaticType           Rule = "IncompatibleRegexWithStaticType"
	IncompatibleCommandWithDynamicType        Rule = "IncompatibleCommandWithDynamicType"
	IncompatibleDirectoryWithStaticExecutable Rule = "IncompatibleDirectoryWithStaticExecutable"
	IncompatibleRegexWithStaticExecutable     Rule = "IncompatibleRegexWithStaticExecutable"
	IncompatibleCommandWithDynamicExecutable  Rule = "IncompatibleCommandWithDynamicExecutable"
	IncompatibleCommandWithDirectory          Rule = "IncompatibleCommandWithDirectory"
	IncompatibleCommandWithRegex              Rule = "IncompatibleCommandWithRegex"
	NoDirectoryForDynamic                     Rule = "NoDirectoryForDynamic"
	NoDirectoryForRegex                       Rule = "NoDirectoryForRegex"
	NoCommandForStatic                        Rule = "NoCommandForStatic"
)

var messages = map[Rule]string{
	NoOptions:                                 "No options provided. Silent mode requires at least one option.",
	NotEnoughPositionalArguments:              "Not enough non-option arguments: got 0, need at least 1",
	IncompatibleDirectoryWithStaticType:       "Option --directory cannot be used with --type static",
	IncompatibleRegexWithStaticType:           "Option --regex cannot be used with --type static",
	IncompatibleCommandWithDynamicType:        "Option --command cannot be used with --type dynamic",
	IncompatibleDirectoryWithStaticExecutable: "Option --directory cannot be used with a static executable. Use --type dynamic to change the executable type.",
	IncompatibleRegexWithStaticExecutable:     "Option --regex cannot be used with a static executable. Use --type dynamic to change the executable type.",
	IncompatibleCommandWithDynamicExecutable:  "Option --command cannot be used with a dynamic executable. Use --type static to change the executable type.",
	IncompatibleCommandWithDirectory:          "Options --command and --directory cannot be used together",
	IncompatibleCommandWithRegex:              "Options --command and --regex cannot be used together",
	NoDirectoryForDynamic:                     "Option --directory is required for a dynamic executable",
	NoDirectoryForRegex:                       "A dynamic executable requires both --directory and --regex",
	NoCommandForStatic:                        "Option --command is required for a static executable",
}

// Error reports which rule rejected the input.
type Error struct {
	Rule  Rule
	Value string // offending name or type, when the rule has one
}

func (e *Error) Error() string {
	switch e.Rule {
	case NameInUse:
		return fmt.Sprintf("Name '%s' is already in use. Please choose a different name.", e.Value)
	case SoftwareNotFound:
		return fmt.Sprintf("Software '%s' does not exist.", e.Value)
	case InvalidType:
		return fmt.Sprintf("Invalid type '%s': must be static or dynamic", e.Value)
	}
	return messages[e.Rule]
}

// Is matches another *Error with the same rule, so callers can write
// errors.Is(err, &validate.Error{Rule: validate.NameInUse}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Rule == e.Rule
}

// RuleOf returns the rule behind err, or "" if err is not a validation error.
func RuleOf(err error) Rule {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Rule
	}
	return ""
}
