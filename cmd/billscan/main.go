// Package main provides the CLI entry point for billscan.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billscan/billscan/internal/batch"
	"github.com/billscan/billscan/internal/bill"
	"github.com/billscan/billscan/internal/extract"
	"github.com/billscan/billscan/internal/pdftext"
	"github.com/billscan/billscan/internal/workbook"
	"github.com/billscan/billscan/pkg/config"
	"github.com/billscan/billscan/pkg/money"
)

// errFilesFailed marks a run where at least one input file failed outright.
var errFilesFailed = errors.New("one or more files failed")

var (
	workbookPath string
	issuersPath  string
	reportPath   string
	verbose      bool
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "billscan <path>...",
		Short: "Parse bill PDFs and record them into a spreadsheet",
		Long: `billscan reads bill documents (PDF), extracts issuer, billing month/year
and amount via text heuristics, and appends one row per bill to a
per-issuer sheet inside a single xlsx workbook.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, args)
		},
	}

	rootCmd.Flags().StringVarP(&workbookPath, "workbook", "w", cfg.WorkbookPath, "Path to the output workbook")
	rootCmd.Flags().StringVar(&issuersPath, "issuers", cfg.IssuersPath, "CSV file with additional known issuers (name,pattern,aliases)")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "Write the per-file outcomes as CSV to this path")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFilesFailed) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, cfg *config.Config, args []string) error {
	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	registry := extract.DefaultRegistry()
	if issuersPath != "" {
		f, err := os.Open(issuersPath)
		if err != nil {
			return fmt.Errorf("open issuer registry: %w", err)
		}
		errs := registry.LoadCSV(f)
		f.Close()
		for _, e := range errs {
			logger.Warn("issuer registry entry skipped", "error", e)
		}
	}

	wb, err := workbook.Open(workbookPath)
	if err != nil {
		return err
	}
	defer wb.Close()

	runner := batch.NewRunner(extract.New(registry, logger), pdftext.Reader{}, logger)
	summary, runErr := runner.Run(wb, args)

	printSummary(cmd.OutOrStdout(), summary)

	if reportPath != "" {
		if err := writeReport(reportPath, summary.Outcomes); err != nil {
			logger.Error("report not written", "path", reportPath, "error", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if summary.Failed() {
		return errFilesFailed
	}
	return nil
}

// printSummary emits one status line per file plus an end-of-run total.
func printSummary(w io.Writer, s *batch.Summary) {
	for _, o := range s.Outcomes {
		if o.Failed() {
			fmt.Fprintf(w, "FAIL  %s: %s\n", o.Path, o.Error)
			continue
		}
		line := fmt.Sprintf("OK    %s -> %s (%s %d, %s)",
			o.Path, o.Sheet, bill.MonthName(o.Month), o.Year, money.FormatUSD(o.Amount))
		if o.NeedsReview() {
			line += fmt.Sprintf("  [review: %s]", strings.ReplaceAll(o.Defaulted, ",", ", "))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%d bill(s) recorded, %d skipped (run %s)\n", s.Processed, s.Skipped, s.RunID)
}

func writeReport(path string, outcomes []batch.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return batch.WriteReport(f, outcomes)
}
