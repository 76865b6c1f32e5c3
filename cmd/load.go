package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ple-import/internal/fetcher"
	"github.com/sells-group/ple-import/internal/model"
	"github.com/sells-group/ple-import/internal/staging"
)

var loadForms []string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Download extracts and stage their rows",
	Long:  "Downloads the configured extract archives and loads every row into the staging schema verbatim. Use --form to limit which extracts load; the default is all of them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		forms, err := selectedForms(loadForms)
		if err != nil {
			return err
		}

		urls := make(map[model.FormKind]string, len(forms))
		for _, form := range forms {
			url := cfg.Import.ExtractURL(form)
			if url == "" {
				return eris.Errorf("no extract url configured for form %s", form)
			}
			urls[form] = url
		}

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		timeout := time.Duration(cfg.Import.TimeoutSecs) * time.Second
		fetch := fetcher.NewAutoFetcher(
			fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
				UserAgent:  cfg.Import.UserAgent,
				Timeout:    timeout,
				MaxRetries: cfg.Import.MaxRetries,
			}),
			fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: timeout}),
		)
		loader := staging.NewLoader(fetch, staging.NewPostgresStore(pool), cfg.Import.BatchSize)

		counts, err := loader.LoadAll(ctx, urls)
		if err != nil {
			return eris.Wrap(err, "load")
		}

		for form, n := range counts {
			zap.L().Info("staged", zap.String("form", string(form)), zap.Int64("rows", n))
		}
		return nil
	},
}

// selectedForms parses --form values, defaulting to every form kind.
func selectedForms(names []string) ([]model.FormKind, error) {
	if len(names) == 0 {
		return model.Forms, nil
	}
	forms := make([]model.FormKind, 0, len(names))
	for _, name := range names {
		form, err := model.ParseFormKind(name)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

func init() {
	loadCmd.Flags().StringSliceVar(&loadForms, "form", nil, "form kinds to load (form5500, form5500sf, schedule_a)")
	rootCmd.AddCommand(loadCmd)
}
