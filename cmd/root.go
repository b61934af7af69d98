package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the command tree; cancelling ctx interrupts a running import
// between API calls.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

const (
	flagPoolSize     = "pool-size"
	flagTokenVersion = "token-version"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	app := &app{}

	rootCmd := &cobra.Command{
		Use:   "mfi",
		Short: "MediaFire bulk import (mfi): add files to your account by hash or share link",
		Long: "mfi signs in to MediaFire and imports files into your account without uploading them, " +
			"either from hash/size/filename lines or from share links of files that already exist on MediaFire.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd, opts)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			app.sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: ~/.mfimport/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int(flagPoolSize, 3, "Session token pool size, 1 to 6 (overrides api.pool_size)")
	rootCmd.PersistentFlags().Int(flagTokenVersion, 2, "Session token scheme, 1 or 2 (overrides api.token_version)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newImportCmd(app),
		newInfoCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}
