package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vercheck-labs/vercheck/internal/cache"
	"github.com/vercheck-labs/vercheck/internal/catalog"
	"github.com/vercheck-labs/vercheck/internal/software"
	"github.com/vercheck-labs/vercheck/internal/validate"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>...",
		Aliases: []string{"rm"},
		Short:   "Remove software from the catalog",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.catalogStore()
			list, err := store.List()
			if err != nil {
				return err
			}

			for _, name := range args {
				if catalog.IndexOf(list, name) < 0 {
					return &validate.Error{Rule: validate.SoftwareNotFound, Value: name}
				}
			}

			kept := slices.DeleteFunc(slices.Clone(list), func(s software.Software) bool {
				return slices.Contains(args, s.Name)
			})
			if err := store.Replace(kept); err != nil {
				return fmt.Errorf("saving catalog: %w", err)
			}

			if c, err := cache.Load(a.checksPath()); err == nil {
				for _, name := range args {
					c.Delete(name)
				}
				if err := c.Save(); err != nil {
					loggerFromContext(cmd.Context()).Warn("check cache not updated", "err", err)
				}
			}

			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", name)
			}
			return nil
		},
	}
}
