package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dynoctl/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently dispatched commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, historyJSON(records))
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "History is empty")
				return nil
			}

			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					record.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					record.Host,
					record.Operation,
					colorizeOutcome(historyOutcomeLabel(record.Outcome), colorize),
					formatElapsed(record.Elapsed),
					truncateDetail(historyDetail(record), 60),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Time", "Host", "Operation", "Outcome", "Elapsed", "Detail"}, rows, 5))
			return nil
		},
	}

	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show (0 for all)")
	historyCmd.Flags().BoolVar(&asJSON, "json", false, "Emit records as JSON")

	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every history record",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			store, err := history.Open(cfg)
			if errors.Is(err, history.ErrSchemaMismatch) {
				if err := removeLedger(cfg.HistoryDBPath()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Removed incompatible history database")
				return nil
			}
			if err != nil {
				return err
			}
			defer store.Close()

			cleared, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleared %d history records\n", cleared)
			return nil
		},
	}
}

// removeLedger deletes the sqlite file and its WAL companions.
func removeLedger(dbPath string) error {
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}

func historyOutcomeLabel(outcome history.Outcome) string {
	switch outcome {
	case history.OutcomeOK:
		return outcomeOK
	case history.OutcomeNoMatch:
		return outcomeNoMatch
	case history.OutcomeError:
		return outcomeFailed
	default:
		return string(outcome)
	}
}

func historyDetail(record history.Record) string {
	if record.Error != "" {
		return record.Error
	}
	return record.Response
}

func historyJSON(records []history.Record) map[string]any {
	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		item := map[string]any{
			"id":         record.ID,
			"created_at": record.CreatedAt.Format(time.RFC3339),
			"host":       record.Host,
			"operation":  record.Operation,
			"outcome":    string(record.Outcome),
			"elapsed_ms": record.Elapsed.Milliseconds(),
		}
		if record.BatchID != "" {
			item["batch_id"] = record.BatchID
		}
		if record.Error != "" {
			item["error"] = record.Error
		}
		items = append(items, item)
	}
	return map[string]any{"records": items}
}
