package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zencompta/zencompta-engine/internal/report"
)

func reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List and show stored compliance reports",
	}
	cmd.AddCommand(reportsListCmd())
	cmd.AddCommand(reportsShowCmd())
	return cmd
}

func reportsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored reports, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			reports, err := store.ListReports(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Println("No reports stored")
				return nil
			}

			for _, r := range reports {
				fmt.Printf("%s  %s  %-10s  score %.1f%%  %d checks\n",
					r.ID,
					r.GeneratedAt.Format(time.RFC3339),
					strings.ToUpper(string(r.Standard)),
					r.ComplianceScore*100,
					r.ChecksEvaluated)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of reports to list")
	return cmd
}

func reportsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <report-id>",
		Short: "Show one stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			details, _ := cmd.Flags().GetBool("details")

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			stored, err := store.GetReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(stored)
			}

			formatter := report.NewCLIFormatter()
			fmt.Println(formatter.FormatSummary(stored))
			if details {
				for _, finding := range stored.Findings {
					fmt.Println()
					fmt.Println(formatter.FormatFinding(finding))
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the report as JSON")
	cmd.Flags().Bool("details", false, "print every finding")
	return cmd
}
