package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	appconfig "github.com/zencompta/zencompta-engine/internal/config"
	"github.com/zencompta/zencompta-engine/internal/engine"
	"github.com/zencompta/zencompta-engine/internal/model"
	"github.com/zencompta/zencompta-engine/internal/report"
	"github.com/zencompta/zencompta-engine/internal/rules"
	"github.com/zencompta/zencompta-engine/internal/validate"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a project's documents against an accounting standard",
		Long: `Run the full validation pipeline over the imported documents of one
project and fiscal year: standard compliance rules, cross-document
reconciliation, temporal anomaly detection and suspicious-entry detection.

Examples:
  zencompta validate --project audit-2025 --year 2025 --standard syscohada
  zencompta validate --project audit-2025 --year 2025 --standard ifrs --rules extra.yaml --json`,
		RunE: runValidate,
	}

	cmd.Flags().String("project", "", "audit project identifier")
	cmd.Flags().Int("year", 0, "fiscal year")
	cmd.Flags().String("standard", "", "accounting standard (ifrs, syscohada, us_gaap, pcg, syscebnl)")
	cmd.Flags().String("rules", "", "YAML file with additional caller-defined rules")
	cmd.Flags().StringSlice("documents", nil, "restrict validation to these document IDs")
	cmd.Flags().Duration("timeout", 0, "abort validation after this duration (0 means no limit)")
	cmd.Flags().Bool("warning-alerts", false, "also emit alerts for warning findings")
	cmd.Flags().Bool("json", false, "print the report as JSON instead of formatted text")
	cmd.Flags().Bool("details", false, "print every finding, not just the summary")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("standard")

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	projectID, _ := cmd.Flags().GetString("project")
	fiscalYear, _ := cmd.Flags().GetInt("year")
	rawStandard, _ := cmd.Flags().GetString("standard")
	rulesFile, _ := cmd.Flags().GetString("rules")
	documentIDs, _ := cmd.Flags().GetStringSlice("documents")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	warningAlerts, _ := cmd.Flags().GetBool("warning-alerts")
	asJSON, _ := cmd.Flags().GetBool("json")
	details, _ := cmd.Flags().GetBool("details")

	standard, err := model.ParseStandard(rawStandard)
	if err != nil {
		return err
	}

	catalog := rules.NewCatalog()
	if rulesFile != "" {
		f, err := os.Open(rulesFile)
		if err != nil {
			return fmt.Errorf("failed to open rules file: %w", err)
		}
		overlay, err := rules.LoadOverlay(f)
		_ = f.Close()
		if err != nil {
			return err
		}
		catalog, err = catalog.WithOverlay(overlay)
		if err != nil {
			return err
		}
		slog.Info("Loaded caller-defined rules", "count", len(overlay))
	}

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	docs, err := store.ListDocuments(ctx, projectID, fiscalYear)
	if err != nil {
		return err
	}
	if len(documentIDs) > 0 {
		docs, err = selectDocuments(docs, documentIDs)
		if err != nil {
			return err
		}
	}

	emitter := report.NewEmitter()
	emitter.EmitWarnings = warningAlerts

	eng, err := engine.New(engine.Deps{
		Catalog: catalog,
		Validators: []validate.Validator{
			validate.NewStandardValidator(),
			validate.NewCrossDocumentValidator(appconfig.LoadCrossDocumentConfig()),
			validate.NewTemporalValidator(appconfig.LoadTemporalConfig()),
			validate.NewSuspiciousValidator(appconfig.LoadSuspiciousConfig()),
		},
		Aggregator: report.NewAggregator(),
		Emitter:    emitter,
		Logger:     slog.Default(),
	})
	if err != nil {
		return err
	}

	outcome, err := eng.Validate(ctx, engine.Request{
		Documents: docs,
		Standard:  standard,
	})
	if err != nil {
		return err
	}

	if err := store.SaveReport(ctx, outcome.Report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	if err := store.SaveAlerts(ctx, outcome.Alerts); err != nil {
		return fmt.Errorf("failed to save alerts: %w", err)
	}

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(outcome.Report)
	}

	formatter := report.NewCLIFormatter()
	fmt.Println(formatter.FormatSummary(outcome.Report))
	if details {
		for _, finding := range outcome.Report.Findings {
			fmt.Println()
			fmt.Println(formatter.FormatFinding(finding))
		}
	}
	if len(outcome.Alerts) > 0 {
		fmt.Printf("\n%d alert(s) created\n", len(outcome.Alerts))
	}
	return nil
}

// selectDocuments keeps only the requested document IDs, erroring on any ID
// that does not belong to the project and fiscal year being validated.
func selectDocuments(docs []*model.Document, ids []string) ([]*model.Document, error) {
	byID := make(map[string]*model.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	selected := make([]*model.Document, 0, len(ids))
	for _, id := range ids {
		doc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("document %q not found in this project and fiscal year", id)
		}
		selected = append(selected, doc)
	}
	return selected, nil
}
