package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"napi/internal/batch"
	"napi/internal/config"
	"napi/internal/download"
	"napi/internal/history"
	"napi/internal/language"
	"napi/internal/logging"
	"napi/internal/scan"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var langFlag string
	var destFlag string
	var updateFlag bool
	var noBackupFlag bool
	var workersFlag int
	var plainFlag bool

	cmd := &cobra.Command{
		Use:   "fetch [FILE|DIR|napiprojekt:<digest>]...",
		Short: "Download subtitles for video files or digest literals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts, workers, err := fetchSettings(cfg, langFlag, destFlag, updateFlag, noBackupFlag, workersFlag)
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			inputs, err := scan.Discover(args, cfg.Downloads.VideoExtensions)
			if err != nil {
				return fmt.Errorf("discover inputs: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(inputs) == 0 {
				fmt.Fprintln(out, "No video files found.")
				return nil
			}

			downloader, err := download.New(cfg, opts, logger)
			if err != nil {
				return err
			}

			progress := func(index, total int, result download.Result) {
				fmt.Fprintf(out, "%d/%d: %s: %s\n", index+1, total, result.Input, progressText(result))
			}
			coordinator := batch.NewCoordinator(downloader, workers, logger, progress)
			report := coordinator.Run(cmd.Context(), inputs)

			recordHistory(cmd, cfg, logger, report, opts.Language)

			fmt.Fprintln(out)
			renderReport(out, report, plainFlag)

			if code := report.ExitCode(); code != 0 {
				return &exitCodeError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Subtitle language (pl or en; defaults to config)")
	cmd.Flags().StringVarP(&destFlag, "dest", "d", "", "Destination directory for subtitles")
	cmd.Flags().BoolVarP(&updateFlag, "update", "u", false, "Re-download subtitles that already exist")
	cmd.Flags().BoolVarP(&noBackupFlag, "no-backup", "n", false, "Skip the -bak copy when updating existing subtitles")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent lookups (defaults to config)")
	cmd.Flags().BoolVar(&plainFlag, "plain", false, "Plain line output instead of a table")

	return cmd
}

// fetchSettings merges config defaults with command-line overrides.
func fetchSettings(cfg *config.Config, langFlag, destFlag string, update, noBackup bool, workersFlag int) (download.Options, int, error) {
	lang := cfg.Downloads.Language
	if langFlag != "" {
		lang = language.Canonical(langFlag)
		if lang == "" {
			return download.Options{}, 0, fmt.Errorf("unsupported language %q (use one of %v)", langFlag, language.Codes())
		}
	}

	dest := cfg.Paths.DestDir
	if destFlag != "" {
		expanded, err := config.ExpandPath(destFlag)
		if err != nil {
			return download.Options{}, 0, fmt.Errorf("resolve destination: %w", err)
		}
		if err := os.MkdirAll(expanded, 0o755); err != nil {
			return download.Options{}, 0, fmt.Errorf("create destination %q: %w", expanded, err)
		}
		dest = expanded
	}

	workers := cfg.Downloads.Workers
	if workersFlag > 0 {
		workers = workersFlag
	}

	opts := download.Options{
		Language:        lang,
		DestDir:         dest,
		Update:          update || cfg.Downloads.Update,
		Backup:          cfg.Downloads.Backup && !noBackup,
		ConvertEncoding: cfg.Downloads.ConvertEncoding,
	}
	return opts, workers, nil
}

func progressText(result download.Result) string {
	switch result.Outcome {
	case download.OutcomeStored:
		return fmt.Sprintf("SUBTITLE STORED (%d bytes, %s)", result.Bytes, result.Service)
	case download.OutcomeSkipped:
		return fmt.Sprintf("skipped, %s already exists (use --update to replace)", result.Target)
	case download.OutcomeNotFound:
		return "subtitle not found"
	default:
		if result.Err != nil {
			return result.Err.Error()
		}
		return "failed"
	}
}

func recordHistory(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, report *batch.Report, lang string) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn("history journal unavailable", logging.Error(err))
		return
	}
	defer store.Close()
	if err := store.RecordBatch(cmd.Context(), report, lang); err != nil {
		logger.Warn("history journal append failed", logging.Error(err))
	}
}

func renderReport(out io.Writer, report *batch.Report, plain bool) {
	headers := []string{"Input", "Outcome", "Service", "Bytes", "Detail"}
	rows := make([][]string, 0, len(report.Results))
	for _, result := range report.Results {
		detail := ""
		if result.Err != nil {
			detail = result.Err.Error()
		} else if result.Outcome == download.OutcomeStored || result.Outcome == download.OutcomeSkipped {
			detail = result.Target
		}
		bytesText := ""
		if result.Bytes > 0 {
			bytesText = fmt.Sprintf("%d", result.Bytes)
		}
		rows = append(rows, []string{result.Input, string(result.Outcome), result.Service, bytesText, detail})
	}

	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
	writeRows(out, headers, rows, aligns, plain)

	stored, skipped, notFound, failed := report.Counts()
	fmt.Fprintf(out, "%d stored, %d skipped, %d not found, %d failed\n", stored, skipped, notFound, failed)
}
