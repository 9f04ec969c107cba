package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Expire ended contracts and log upcoming expirations",
		Long:  "Runs the daily expiry pass: in-progress contracts past their end date move to done, and contracts ending within the reminder window are logged.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemind()
		},
	}
}

func runRemind() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	window := time.Duration(a.cfg.Schedule.ExpiryReminderDays) * 24 * time.Hour
	expired, err := a.contracts.ExpireDue(context.Background(), time.Now(), window)
	if err != nil {
		return err
	}

	fmt.Printf("Expired %d contract(s)\n", expired)
	return nil
}
