package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vercheck-labs/vercheck/internal/catalog"
	"github.com/vercheck-labs/vercheck/internal/session"
	"github.com/vercheck-labs/vercheck/internal/validate"
)

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [existing-name]",
		Short: "Edit a software entry",
		Long: `Edit an existing catalog entry.

Interactively, current values are offered as defaults and the entry is picked
from a menu when no name is given. With software options (or --silent) the
named entry is updated from the options alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(cmd, args)
		},
	}
	addSoftwareFlags(cmd)
	return cmd
}

func (a *app) runEdit(cmd *cobra.Command, args []string) error {
	fields, err := readSoftwareFlags(cmd)
	if err != nil {
		return err
	}

	list, err := a.catalogStore().List()
	if err != nil {
		return err
	}

	var existingName *string
	if len(args) == 1 {
		existingName = &args[0]
	}

	if silentMode(cmd, fields) {
		built, err := validate.Build(validate.Request{
			Mode:         validate.ModeEdit,
			Silent:       true,
			ExistingName: existingName,
			Fields:       fields,
		}, list)
		if err != nil {
			return err
		}
		res, err := a.resolveSilently(cmd, built.Software)
		if err != nil {
			return err
		}
		if err := a.save(cmd.Context(), list, built.Index, *existingName, res); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", res.Software.Name)
		return nil
	}

	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No software to edit.")
		return nil
	}

	p := session.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	index := -1
	if existingName != nil {
		index = catalog.IndexOf(list, *existingName)
		if index < 0 {
			return &validate.Error{Rule: validate.SoftwareNotFound, Value: *existingName}
		}
	} else {
		index, err = p.Choose("Select software to edit", catalog.Names(list), 0)
		if err != nil {
			return err
		}
	}

	existing := list[index]
	res, ok, err := a.runInteractive(cmd, p, list, &existing)
	if err != nil || !ok {
		return err
	}
	if err := a.save(cmd.Context(), list, index, existing.Name, res); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", res.Software.Name)
	return nil
}
