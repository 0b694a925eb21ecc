package cli

import (
	"github.com/spf13/cobra"

	"github.com/vercheck-labs/vercheck/internal/validate"
)

// softwareFlag binds one command-line flag to a validate.Fields member.
type softwareFlag struct {
	name  string
	usage string
	field func(*validate.Fields) **string
}

var softwareFlags = []softwareFlag{
	{"name", "software name", func(f *validate.Fields) **string { return &f.Name }},
	{"type", "executable type: static or dynamic", func(f *validate.Fields) **string { return &f.Type }},
	{"command", "command or path of a static executable", func(f *validate.Fields) **string { return &f.Command }},
	{"directory", "directory holding a dynamic executable", func(f *validate.Fields) **string { return &f.Directory }},
	{"regex", "regex selecting the dynamic executable inside --directory", func(f *validate.Fields) **string { return &f.Regex }},
	{"args", "arguments passed to the executable", func(f *validate.Fields) **string { return &f.Args }},
	{"shell-override", "shell used instead of the platform default", func(f *validate.Fields) **string { return &f.ShellOverride }},
	{"installed-regex", "regex whose first group is the installed version", func(f *validate.Fields) **string { return &f.InstalledRegex }},
	{"url", "URL of a page listing the latest version", func(f *validate.Fields) **string { return &f.URL }},
	{"latest-regex", "regex whose first group is the latest version", func(f *validate.Fields) **string { return &f.LatestRegex }},
}

func addSoftwareFlags(cmd *cobra.Command) {
	for _, sf := range softwareFlags {
		cmd.Flags().String(sf.name, "", sf.usage)
	}
	cmd.Flags().Bool("silent", false, "skip prompts and use the given options only")
}

// readSoftwareFlags collects every software flag the user supplied. A flag
// set to the empty string still counts as supplied.
func readSoftwareFlags(cmd *cobra.Command) (validate.Fields, error) {
	var fields validate.Fields
	for _, sf := range softwareFlags {
		if !cmd.Flags().Changed(sf.name) {
			continue
		}
		v, err := cmd.Flags().GetString(sf.name)
		if err != nil {
			return fields, err
		}
		*sf.field(&fields) = &v
	}
	return fields, nil
}

// silentMode reports whether the command should skip prompting. Passing any
// software flag implies --silent.
func silentMode(cmd *cobra.Command, fields validate.Fields) bool {
	silent, _ := cmd.Flags().GetBool("silent")
	return silent || !fields.Empty()
}
