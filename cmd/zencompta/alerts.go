package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zencompta/zencompta-engine/internal/report"
)

func alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List open alerts ordered by due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			alerts, err := store.ListOpenAlerts(cmd.Context())
			if err != nil {
				return err
			}
			if len(alerts) == 0 {
				fmt.Println("No open alerts")
				return nil
			}

			formatter := report.NewCLIFormatter()
			now := time.Now()
			for _, alert := range alerts {
				fmt.Println(formatter.FormatAlert(alert, now))
			}
			return nil
		},
	}
}
