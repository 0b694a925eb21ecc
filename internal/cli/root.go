package cli

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vercheck-labs/vercheck/internal/branding"
	"github.com/vercheck-labs/vercheck/internal/catalog"
	"github.com/vercheck-labs/vercheck/internal/config"
	"github.com/vercheck-labs/vercheck/internal/resolve"
	"github.com/vercheck-labs/vercheck/internal/userdata"
)

// app carries build info and the collaborators shared by every command.
// Zero-valued hooks fall back to the real catalog, cache and network.
type app struct {
	version string
	commit  string
	date    string
	verbose bool

	store      func() catalog.Store
	cachePath  func() string
	runner     resolve.Runner
	httpClient *http.Client
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	a := &app{version: version, commit: commit, date: date}
	return newRootCmd(a).ExecuteContext(context.Background())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` keeps a catalog of the software you care about and reports, for each
entry, the version installed on this machine next to the latest published one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newAddCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd(a))
	return root
}

func (a *app) catalogStore() catalog.Store {
	if a.store != nil {
		return a.store()
	}
	return catalog.NewFileStore(userdata.CatalogPath())
}

func (a *app) checksPath() string {
	if a.cachePath != nil {
		return a.cachePath()
	}
	return userdata.CachePath()
}

func (a *app) userAgent() string {
	if ua := config.Get(config.KeyUserAgent); ua != "" {
		return ua
	}
	return branding.UserAgent() + "/" + a.version
}

// resolvers builds the installed and latest resolvers from configuration.
func (a *app) resolvers(ctx context.Context) (*resolve.Installed, *resolve.Latest) {
	logger := loggerFromContext(ctx)

	opts := []resolve.InstalledOption{
		resolve.WithDefaultShell(config.Get(config.KeyShell)),
		resolve.WithInstalledLogger(logger),
	}
	if a.runner != nil {
		opts = append(opts, resolve.WithRunner(a.runner))
	}

	client := a.httpClient
	if client == nil {
		client = &http.Client{Timeout: config.Duration(config.KeyHTTPTimeout)}
	}

	return resolve.NewInstalled(opts...), resolve.NewLatest(
		resolve.WithHTTPClient(client),
		resolve.WithUserAgent(a.userAgent()),
		resolve.WithLatestLogger(logger),
	)
}
