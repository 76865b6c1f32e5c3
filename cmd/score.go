package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/ple-import/internal/company"
	"github.com/sells-group/ple-import/internal/enrich"
	"github.com/sells-group/ple-import/internal/filing"
)

var scoreCmd = &cobra.Command{
	Use:   "score <company-id>",
	Short: "Compute a company's enrichment score",
	Long:  "Computes the 0-100 enrichment completeness score for one company from its EIN, email pattern, LinkedIn URL, domain, linked filings, and filled slots.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		calc := enrich.NewCalculator(company.NewPostgresStore(pool), filing.NewPostgresStore(pool))
		score, err := calc.ScoreCompany(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d/100\n", args[0], score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
