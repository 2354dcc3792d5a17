package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zencompta/zencompta-engine/internal/model"
	"github.com/zencompta/zencompta-engine/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in compliance rules",
		RunE:  runRules,
	}
	cmd.Flags().String("standard", "", "only show rules for one standard")
	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	rawStandard, _ := cmd.Flags().GetString("standard")

	standards := model.Standards()
	if rawStandard != "" {
		standard, err := model.ParseStandard(rawStandard)
		if err != nil {
			return err
		}
		standards = []model.Standard{standard}
	}

	catalog := rules.NewCatalog()
	for _, standard := range standards {
		ruleSet, err := catalog.ForStandard(standard)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d rules)\n", strings.ToUpper(string(standard)), len(ruleSet))
		for _, rule := range ruleSet {
			fmt.Printf("  %-15s %-10s %-13s %s\n", rule.ID, rule.Severity, rule.Category, rule.Title)
		}
		fmt.Println()
	}
	return nil
}
