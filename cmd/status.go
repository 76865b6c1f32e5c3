package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/ple-import/internal/model"
	"github.com/sells-group/ple-import/internal/staging"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show staged row counts per form",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		store := staging.NewPostgresStore(pool)
		for _, form := range model.Forms {
			n, err := store.Count(ctx, form)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %d staged rows\n", form, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
