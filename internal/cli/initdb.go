package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// newApp runs the migrations as part of startup.
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			fmt.Printf("Database ready at %s\n", a.cfg.DB.Path)
			return nil
		},
	}
}
