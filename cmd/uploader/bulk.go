package main

import (
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/bulk"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

var (
	flagCSV          string
	flagBulkCategory int
)

var bulkCmd = &cobra.Command{
	Use:   "bulk [directory]",
	Short: "Upload a batch of products from disk or a CSV file",
	Long: `Scans a directory of product folders (or, with --csv, reads a
spreadsheet export) and submits every product to the upload queue.
Progress is printed as each product finishes. Exits non-zero if any
product failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			tasks  []*domain.Task
			report *bulk.Report
			err    error
		)
		switch {
		case flagCSV != "":
			tasks, report, err = bulk.ReadCSV(flagCSV, flagBulkCategory, appInstance.logger)
		case len(args) == 1:
			scanner := bulk.NewScanner(appInstance.logger)
			tasks, report, err = scanner.Scan(args[0], flagBulkCategory)
		default:
			return fmt.Errorf("a directory argument or --csv is required")
		}
		if err != nil {
			return err
		}

		for _, msg := range report.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %s\n", msg)
		}
		if len(tasks) == 0 {
			return fmt.Errorf("no products found")
		}
		fmt.Printf("Submitting %d products (batch %s)\n", len(tasks), report.BatchID)

		runner := appInstance.newRunner()
		defer runner.Stop()

		var failed atomic.Int64
		runner.SetCompletionCallback(func(r domain.Result) {
			if r.Success {
				fmt.Printf("  ok   %s -> %s\n", r.Task.Title, r.Product.Permalink)
				return
			}
			failed.Add(1)
			fmt.Printf("  FAIL %s: %s\n", r.Task.Title, r.Err)
		})

		for _, t := range tasks {
			if _, err := runner.Submit(t); err != nil {
				return fmt.Errorf("failed to submit %q: %w", t.Title, err)
			}
		}
		runner.WaitForCompletion()

		stats := runner.Stats()
		fmt.Printf("Done: %d created, %d failed\n", stats.Completed, stats.Failed)
		if failed.Load() > 0 {
			return fmt.Errorf("%d of %d products failed", failed.Load(), len(tasks))
		}
		return nil
	},
}

func init() {
	bulkCmd.Flags().StringVar(&flagCSV, "csv", "", "read products from a CSV file")
	bulkCmd.Flags().IntVar(&flagBulkCategory, "category", 0, "category ID for the batch")

	_ = bulkCmd.MarkFlagRequired("category")

	rootCmd.AddCommand(bulkCmd)
}
