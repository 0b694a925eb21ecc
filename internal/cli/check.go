package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vercheck-labs/vercheck/internal/cache"
	"github.com/vercheck-labs/vercheck/internal/catalog"
	"github.com/vercheck-labs/vercheck/internal/config"
	"github.com/vercheck-labs/vercheck/internal/drift"
	"github.com/vercheck-labs/vercheck/internal/session"
	"github.com/vercheck-labs/vercheck/internal/software"
	"github.com/vercheck-labs/vercheck/internal/validate"
)

// checkResult is the outcome of checking one entry.
type checkResult struct {
	Name      string `json:"name"`
	Installed string `json:"installed,omitempty"`
	Latest    string `json:"latest,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		noColor bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "check [name...]",
		Short: "Resolve installed and latest versions",
		Long: `Resolve the installed and latest version of every catalog entry, or of the
named entries only, one entry at a time. Each entry gets its own timeout
(--timeout, else the check_timeout setting). Results are cached for list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.catalogStore().List()
			if err != nil {
				return err
			}
			selected, err := selectEntries(list, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(selected) == 0 {
				if asJSON {
					fmt.Fprintln(out, "[]")
				} else {
					fmt.Fprintln(out, "No software tracked yet.")
				}
				return nil
			}

			if !cmd.Flags().Changed("timeout") {
				timeout = config.Duration(config.KeyCheckTimeout)
			}

			results := a.checkAll(cmd.Context(), selected, timeout)

			if asJSON {
				data, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			} else {
				p := newPainter(out, noColor)
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tINSTALLED\tLATEST\tSTATUS")
				for _, r := range results {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, dash(r.Installed), dash(r.Latest), p.status(r.Status))
				}
				if err := w.Flush(); err != nil {
					return err
				}
				for _, r := range results {
					if r.Error != "" {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", r.Name, r.Error)
					}
				}
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Time limit for checking one entry")
	return cmd
}

// selectEntries returns the named entries in catalog order, or all of them
// when names is empty.
func selectEntries(list []software.Software, names []string) ([]software.Software, error) {
	if len(names) == 0 {
		return list, nil
	}
	var out []software.Software
	for _, name := range names {
		i := catalog.IndexOf(list, name)
		if i < 0 {
			return nil, &validate.Error{Rule: validate.SoftwareNotFound, Value: name}
		}
		out = append(out, list[i])
	}
	return out, nil
}

// checkAll resolves each entry in turn and records the outcome in the cache.
func (a *app) checkAll(ctx context.Context, list []software.Software, timeout time.Duration) []checkResult {
	logger := loggerFromContext(ctx)
	installed, latest := a.resolvers(ctx)

	checks, err := cache.Load(a.checksPath())
	if err != nil {
		logger.Warn("starting with an empty check cache", "err", err)
		checks = nil
	}

	results := make([]checkResult, 0, len(list))
	for _, sw := range list {
		r := checkOne(ctx, installed, latest, sw, timeout)
		logger.Debug("checked", "software", sw.Name, "status", r.Status)
		results = append(results, r)

		if checks != nil {
			checks.Put(sw.Name, cache.Check{
				Installed: r.Installed,
				Latest:    r.Latest,
				Error:     r.Error,
				CheckedAt: time.Now().UTC(),
			})
		}
	}

	if checks != nil {
		if err := checks.Save(); err != nil {
			logger.Warn("check cache not updated", "err", err)
		}
	}
	return results
}

func checkOne(ctx context.Context, installed, latest session.Resolver, sw software.Software, timeout time.Duration) checkResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r := checkResult{Name: sw.Name}
	iv, err := installed.Resolve(ctx, sw)
	if err != nil {
		r.Status, r.Error = statusFailed, "installed: "+err.Error()
		return r
	}
	r.Installed = iv

	lv, err := latest.Resolve(ctx, sw)
	if err != nil {
		r.Status, r.Error = statusFailed, "latest: "+err.Error()
		return r
	}
	r.Latest = lv
	r.Status = string(drift.Compare(iv, lv))
	return r
}
