package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "budget",
		Short:   "Personal budget tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCommand())

	return rootCmd
}
