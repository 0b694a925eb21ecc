package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vercheck-labs/vercheck/internal/cache"
	"github.com/vercheck-labs/vercheck/internal/catalog"
	"github.com/vercheck-labs/vercheck/internal/session"
	"github.com/vercheck-labs/vercheck/internal/software"
)

// save stores res at index (append when negative) and records both
// versions in the check cache. previous is the name the entry had before an
// edit, or "" for an add.
func (a *app) save(ctx context.Context, list []software.Software, index int, previous string, res session.Result) error {
	store := a.catalogStore()
	if err := store.Replace(catalog.Put(list, index, res.Software)); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}

	c, err := cache.Load(a.checksPath())
	if err != nil {
		loggerFromContext(ctx).Warn("check cache not updated", "err", err)
		return nil
	}
	if previous != "" {
		c.Rename(previous, res.Software.Name)
	}
	c.Put(res.Software.Name, cache.Check{
		Installed: res.InstalledVersion,
		Latest:    res.LatestVersion,
		CheckedAt: time.Now().UTC(),
	})
	if err := c.Save(); err != nil {
		loggerFromContext(ctx).Warn("check cache not updated", "err", err)
	}
	return nil
}

// resolveSilently resolves both versions without prompting, printing each
// as it is found. The first failure aborts.
func (a *app) resolveSilently(cmd *cobra.Command, sw software.Software) (session.Result, error) {
	ctx := cmd.Context()
	installed, latest := a.resolvers(ctx)
	out := cmd.OutOrStdout()

	iv, err := installed.Resolve(ctx, sw)
	if err != nil {
		return session.Result{}, err
	}
	fmt.Fprintf(out, "Installed version: %s\n", iv)

	lv, err := latest.Resolve(ctx, sw)
	if err != nil {
		return session.Result{}, err
	}
	fmt.Fprintf(out, "Latest version: %s\n", lv)

	return session.Result{Software: sw, InstalledVersion: iv, LatestVersion: lv}, nil
}

// runInteractive drives a session on the command's input and output.
func (a *app) runInteractive(cmd *cobra.Command, p session.Prompter, list []software.Software, existing *software.Software) (session.Result, bool, error) {
	ctx := cmd.Context()
	installed, latest := a.resolvers(ctx)

	res, err := session.Run(ctx, p, session.Options{
		Installed: installed,
		Latest:    latest,
		Catalog:   list,
		Existing:  existing,
		Logger:    loggerFromContext(ctx),
	})
	if errors.Is(err, session.ErrAbandoned) {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing saved.")
		return session.Result{}, false, nil
	}
	if err != nil {
		return session.Result{}, false, err
	}
	return res, true, nil
}
