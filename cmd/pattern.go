package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ple-import/internal/company"
	"github.com/sells-group/ple-import/internal/emailpattern"
)

// detectConfidence is the confidence recorded for a pattern detected
// from a single verified address.
const detectConfidence = 90

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Detect and render company email patterns",
}

var patternDetectCmd = &cobra.Command{
	Use:   "detect <company-id> <email> <first-name> <last-name>",
	Short: "Detect a company's email pattern from one verified address",
	Long:  "Infers the address template behind a known (name, email) pair and stores it on the company. One verified address is enough to render candidates for every other contact there.",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		companyID, email, first, last := args[0], args[1], args[2], args[3]

		pattern, ok := emailpattern.Detect(email, first, last)
		if !ok {
			return eris.Errorf("address %q follows no known pattern for %s %s", email, first, last)
		}

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		store := company.NewPostgresStore(pool)
		if err := store.UpdateEmailPattern(ctx, companyID, pattern, detectConfidence); err != nil {
			return err
		}

		zap.L().Info("email pattern stored",
			zap.String("company_id", companyID),
			zap.String("pattern", pattern),
		)
		fmt.Println(pattern)
		return nil
	},
}

var patternRenderCmd = &cobra.Command{
	Use:   "render <company-id> <first-name> <last-name>",
	Short: "Render a candidate address for a person at a company",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		companyID, first, last := args[0], args[1], args[2]

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		c, err := company.NewPostgresStore(pool).Get(ctx, companyID)
		if err != nil {
			return err
		}
		if c == nil {
			return eris.Errorf("company %s not found", companyID)
		}
		if c.EmailPattern == "" {
			return eris.Errorf("company %s has no email pattern on record", companyID)
		}
		if c.Domain == "" {
			return eris.Errorf("company %s has no domain on record", companyID)
		}

		fmt.Println(emailpattern.Render(first, last, c.EmailPattern, c.Domain))
		return nil
	},
}

func init() {
	patternCmd.AddCommand(patternDetectCmd)
	patternCmd.AddCommand(patternRenderCmd)
	rootCmd.AddCommand(patternCmd)
}
