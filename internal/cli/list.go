package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vercheck-labs/vercheck/internal/cache"
	"github.com/vercheck-labs/vercheck/internal/drift"
	"github.com/vercheck-labs/vercheck/internal/software"
)

// listEntry is one catalog row for display.
type listEntry struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Executable string `json:"executable"`
	Installed  string `json:"installed,omitempty"`
	Latest     string `json:"latest,omitempty"`
	Status     string `json:"status,omitempty"`
	CheckedAt  string `json:"checked_at,omitempty"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked software",
		Long:  `List every catalog entry with the versions found by the last add, edit or check.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.catalogStore().List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(list) == 0 && !asJSON {
				fmt.Fprintln(out, "No software tracked yet.")
				return nil
			}

			checks, err := cache.Load(a.checksPath())
			if err != nil {
				loggerFromContext(cmd.Context()).Warn("ignoring check cache", "err", err)
				checks = nil
			}

			entries := make([]listEntry, 0, len(list))
			for _, sw := range list {
				entries = append(entries, newListEntry(sw, checks))
			}

			if asJSON {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			p := newPainter(out, noColor)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tEXECUTABLE\tINSTALLED\tLATEST\tSTATUS")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Name, e.Type, e.Executable, dash(e.Installed), dash(e.Latest), p.status(dash(e.Status)))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	return cmd
}

func newListEntry(sw software.Software, checks *cache.Cache) listEntry {
	e := listEntry{Name: sw.Name, Type: string(sw.Executable.Kind()), Executable: describeExecutable(sw.Executable)}
	if checks == nil {
		return e
	}
	c, ok := checks.Get(sw.Name)
	if !ok {
		return e
	}
	e.Installed, e.Latest = c.Installed, c.Latest
	e.CheckedAt = c.CheckedAt.Format("2006-01-02 15:04")
	switch {
	case c.Error != "":
		e.Status = statusFailed
	case c.Installed != "" && c.Latest != "":
		e.Status = string(drift.Compare(c.Installed, c.Latest))
	}
	return e
}

func describeExecutable(exe software.Executable) string {
	switch e := exe.(type) {
	case software.Static:
		return e.Command
	case software.Dynamic:
		return fmt.Sprintf("%s/%s", e.Directory, e.Regex)
	}
	return ""
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
