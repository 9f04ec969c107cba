// Package cli defines the cobra command tree for visitflow.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "visitflow",
		Short:         "Schedule client visits and manage their report lifecycle",
		Long:          "Manages service contracts, generates monthly visit batches, keeps a per-client folder tree of visit reports, and drives the draft-to-signed document workflow.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newGenerateCmd(),
		newRemindCmd(),
		newInitDBCmd(),
	)

	return root
}
