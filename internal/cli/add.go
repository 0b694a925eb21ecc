package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vercheck-labs/vercheck/internal/session"
	"github.com/vercheck-labs/vercheck/internal/validate"
)

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add software to the catalog",
		Long: `Add a software entry to the catalog.

Without options the entry is configured interactively: the installed version
is resolved and shown for confirmation before the latest-version source is
asked for. Any software option (or --silent) skips the questions, resolves
both versions once, and saves only if both succeed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAdd(cmd)
		},
	}
	addSoftwareFlags(cmd)
	return cmd
}

func (a *app) runAdd(cmd *cobra.Command) error {
	fields, err := readSoftwareFlags(cmd)
	if err != nil {
		return err
	}

	list, err := a.catalogStore().List()
	if err != nil {
		return err
	}

	if silentMode(cmd, fields) {
		built, err := validate.Build(validate.Request{
			Mode:   validate.ModeAdd,
			Silent: true,
			Fields: fields,
		}, list)
		if err != nil {
			return err
		}
		res, err := a.resolveSilently(cmd, built.Software)
		if err != nil {
			return err
		}
		if err := a.save(cmd.Context(), list, -1, "", res); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s.\n", res.Software.Name)
		return nil
	}

	p := session.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	res, ok, err := a.runInteractive(cmd, p, list, nil)
	if err != nil || !ok {
		return err
	}
	if err := a.save(cmd.Context(), list, -1, "", res); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s.\n", res.Software.Name)
	return nil
}
