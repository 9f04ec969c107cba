package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the monthly visit batch for all active contracts",
		Long:  "Runs the monthly generation pass. Contracts whose period is already generated are skipped, so the command is safe to re-run or schedule via cron.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(period)
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "period to generate as YYYY-MM (default: current month)")

	return cmd
}

func runGenerate(period string) error {
	periodStart := time.Now()
	if period != "" {
		var err error
		periodStart, err = time.Parse("2006-01", period)
		if err != nil {
			return fmt.Errorf("invalid --period %q (use YYYY-MM)", period)
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	created, err := a.scheduler.GenerateForPeriod(context.Background(), periodStart)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d visit(s) for %s\n", created, periodStart.Format("2006-01"))
	return nil
}
