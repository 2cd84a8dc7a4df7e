package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"napi/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int
	var batchFlag string
	var plainFlag bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent download batches from the history journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history journal is disabled in the configuration")
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history journal: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if batchFlag != "" {
				return printBatchInputs(cmd, store, batchFlag, plainFlag)
			}

			batches, err := store.RecentBatches(cmd.Context(), limitFlag)
			if err != nil {
				return fmt.Errorf("read history journal: %w", err)
			}
			if len(batches) == 0 {
				fmt.Fprintln(out, "No batches recorded yet.")
				return nil
			}

			headers := []string{"Batch", "Finished", "Lang", "Inputs", "Stored", "Skipped", "Not Found", "Failed"}
			rows := make([][]string, 0, len(batches))
			for _, record := range batches {
				rows = append(rows, []string{
					record.ID,
					record.FinishedAt.Local().Format("2006-01-02 15:04:05"),
					record.Language,
					strconv.Itoa(record.Inputs()),
					strconv.Itoa(record.Stored),
					strconv.Itoa(record.Skipped),
					strconv.Itoa(record.NotFound),
					strconv.Itoa(record.Failed),
				})
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}
			writeRows(out, headers, rows, aligns, plainFlag)
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum number of batches to list")
	cmd.Flags().StringVar(&batchFlag, "batch", "", "Show the per-input records for one batch ID")
	cmd.Flags().BoolVar(&plainFlag, "plain", false, "Plain line output instead of a table")

	return cmd
}

func printBatchInputs(cmd *cobra.Command, store *history.Store, batchID string, plain bool) error {
	records, err := store.BatchInputs(cmd.Context(), batchID)
	if err != nil {
		return fmt.Errorf("read batch %s: %w", batchID, err)
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No records for batch %s.\n", batchID)
		return nil
	}

	headers := []string{"#", "Input", "Outcome", "Service", "Bytes", "Detail"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		detail := record.Target
		if record.Error != "" {
			detail = record.Error
		}
		bytesText := ""
		if record.Bytes > 0 {
			bytesText = strconv.Itoa(record.Bytes)
		}
		rows = append(rows, []string{
			strconv.Itoa(record.Position + 1),
			record.Input,
			record.Outcome,
			record.Service,
			bytesText,
			detail,
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
	writeRows(out, headers, rows, aligns, plain)
	return nil
}
