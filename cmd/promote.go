package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ple-import/internal/company"
	"github.com/sells-group/ple-import/internal/filing"
	"github.com/sells-group/ple-import/internal/match"
	"github.com/sells-group/ple-import/internal/promote"
	"github.com/sells-group/ple-import/internal/report"
	"github.com/sells-group/ple-import/internal/staging"
)

var (
	promoteForms  []string
	promoteReport string
)

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Promote staged rows into filings",
	Long:  "Normalizes staged rows, resolves sponsors against the company hub, inserts filings keyed on acknowledgment ID, and backfills missing EINs. Staging is cleared per form after promotion. Safe to rerun.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		forms, err := selectedForms(promoteForms)
		if err != nil {
			return err
		}

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		companies := company.NewPostgresStore(pool)
		pipeline := promote.New(
			staging.NewPostgresStore(pool),
			match.New(companies),
			companies,
			filing.NewPostgresStore(pool),
		)

		var summaries []promote.Summary
		for _, form := range forms {
			summary, err := pipeline.Run(ctx, form)
			if err != nil {
				return eris.Wrapf(err, "promote %s", form)
			}
			summaries = append(summaries, *summary)
		}

		if promoteReport != "" {
			if err := report.WriteSummary(promoteReport, summaries); err != nil {
				return err
			}
			zap.L().Info("wrote run report", zap.String("path", promoteReport))
		}
		return nil
	},
}

func init() {
	promoteCmd.Flags().StringSliceVar(&promoteForms, "form", nil, "form kinds to promote (default all)")
	promoteCmd.Flags().StringVar(&promoteReport, "report", "", "write an XLSX run report to this path")
	rootCmd.AddCommand(promoteCmd)
}
