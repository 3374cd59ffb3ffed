package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"parqsum/adapters/excel"
	"parqsum/adapters/parquet"
	"parqsum/app"
	"parqsum/domain/summary"
	"parqsum/internal/config"
	"parqsum/internal/errors"
	"parqsum/internal/logging"
	"parqsum/internal/report"
	"parqsum/ports"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if code := errors.GetCode(err); code != errors.CodeUnknown {
			fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", code, err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output      string
		threshold   uint
		lowMemory   bool
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "parqsum <input-file>",
		Short: "Analyze and summarize tabular datasets",
		Long: `parqsum produces a statistical summary of a tabular dataset:
per-column type classification, numerical descriptive statistics, and
categorical frequency analysis.

Parquet is the primary format; xlsx and csv files are also accepted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real environment still applies without it.
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("categorical-threshold") {
				cfg.CategoricalThreshold = threshold
			}
			if cmd.Flags().Changed("low-memory") {
				cfg.LowMemory = lowMemory
			}
			if cmd.Flags().Changed("parallel") {
				cfg.Parallelism = parallelism
			}

			return run(cmd, args[0], output, cfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().UintVar(&threshold, "categorical-threshold", 10,
		"maximum number of distinct values to consider a column categorical")
	cmd.Flags().BoolVar(&lowMemory, "low-memory", false,
		"process file with reduced memory usage (limits parallelism)")
	cmd.Flags().IntVar(&parallelism, "parallel", 1,
		"number of columns to summarize concurrently")

	return cmd
}

func run(cmd *cobra.Command, inputPath, outputPath string, cfg *config.Config) error {
	log := logging.NewDefault()

	if _, err := os.Stat(inputPath); err != nil {
		return errors.LoadFailed(fmt.Sprintf("input file '%s' does not exist", inputPath), nil)
	}

	tbl, err := loadTable(inputPath, cfg)
	if err != nil {
		return errors.LoadFailed("could not load dataset", err)
	}

	rows, cols := tbl.Shape()
	fmt.Println("📊 Dataset Analysis")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📁 File: %s\n", inputPath)
	fmt.Printf("📏 Shape: %d rows × %d columns\n", rows, cols)
	fmt.Println()

	service := app.NewSummarizerService(cfg.CategoricalThreshold, log)

	ctx := cmd.Context()
	var results []summary.ColumnSummary
	if cfg.Parallelism > 1 {
		results, err = service.SummarizeParallel(ctx, tbl, cfg.Parallelism)
	} else {
		results, err = service.Summarize(ctx, tbl)
	}
	if err != nil {
		return errors.Wrap(err, "analysis failed")
	}

	text := report.Render(results)

	if outputPath == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write output file '%s'", outputPath)
	}
	fmt.Printf("Summary written to: %s\n", outputPath)
	return nil
}

func loadTable(path string, cfg *config.Config) (ports.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".csv":
		return excel.NewDataReader(path).Load()
	default:
		return parquet.Load(path, parquet.Options{LowMemory: cfg.LowMemory})
	}
}
