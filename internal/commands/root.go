package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/fareview/internal/buildinfo"
	"github.com/cleared-dev/fareview/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "fareview",
		Short:   "Fare card transaction history with rebuilt balances",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to config file")

	rootCmd.AddCommand(
		newServeCommand(&configPath),
		newShowCommand(&configPath),
		newConfigCommand(&configPath),
	)

	return rootCmd
}
