// Package main provides the CLI entry point for sheetreport.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/config"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/output"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/parser"
)

type flags struct {
	outputPath  string
	pretty      bool
	format      string
	sheet       string
	strict      bool
	rawValues   bool
	sectionsDir string
	watch       bool
	cfgFile     string
	logLevel    string
	logFormat   string
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "sheetreport [input.xlsx|dir]",
		Short: "Extract indicators and sections from report spreadsheets",
		Long: `sheetreport reads one sheet of a loosely structured report workbook and
outputs its headline indicators, header-delimited sections, anchored lists
and tables, and a PnL/MTM summary as JSON or YAML.

A directory argument selects the first .xlsx file in it.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "."
			if len(args) == 1 {
				input = args[0]
			}
			return run(cmd, f, input)
		},
	}

	rootCmd.PersistentFlags().StringVar(&f.cfgFile, "config", "", "config file (default: ./sheetreport.yaml)")
	rootCmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&f.logFormat, "log-format", "", "log format: text or json")

	rootCmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&f.format, "format", "json", "Output format: json or yaml")
	rootCmd.Flags().StringVar(&f.sheet, "sheet", "", "Sheet to read (default: first sheet)")
	rootCmd.Flags().BoolVar(&f.strict, "strict", false, "Report unparsable numbers instead of reading them as zero")
	rootCmd.Flags().BoolVar(&f.rawValues, "raw-values", false, "Keep date cells as Excel serial numbers")
	rootCmd.Flags().StringVar(&f.sectionsDir, "sections-dir", "", "Directory for per-section output files")
	rootCmd.Flags().BoolVar(&f.watch, "watch", false, "Re-extract whenever the workbook changes")

	rootCmd.AddCommand(newInitConfigCmd())
	return rootCmd
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "sheetreport.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists: %s", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.cfgFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("sheet") {
		cfg.Sheet = f.sheet
	}
	if changed("strict") {
		cfg.Strict = f.strict
	}
	if changed("raw-values") {
		cfg.RawValues = f.rawValues
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, f *flags, input string) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	format, err := output.ParseFormat(f.format)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	opts := cfg.ToOptions()
	opts.Logger = logger

	if f.watch {
		return runWatch(cmd, f, input, opts, format)
	}

	report, err := sheetreport.Extract(input, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	return emit(cmd.OutOrStdout(), f, report, format)
}

// emit writes the report to the output file or w, and the per-section files.
func emit(w io.Writer, f *flags, report *models.Report, format output.Format) error {
	data, err := output.Encode(report, format, f.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if f.outputPath != "" {
		if err := os.WriteFile(f.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if f.sectionsDir == "" {
		fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
	}

	if f.sectionsDir != "" {
		if err := writeSectionFiles(report, f.sectionsDir, format, f.pretty); err != nil {
			return fmt.Errorf("failed to write section files: %w", err)
		}
	}
	return nil
}

func writeSectionFiles(report *models.Report, dir string, format output.Format, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range report.Sections {
		section := &report.Sections[i]
		data, err := output.Encode(section, format, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sectionFileName(section.Name, i)+format.Ext())
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

// sectionFileName turns a section name into a file name stem.
func sectionFileName(name string, index int) string {
	stem := parser.CleanSectionName(name)
	stem = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, stem)
	if stem == "" || stem == "." || stem == ".." {
		return fmt.Sprintf("section_%d", index+1)
	}
	return stem
}

func runWatch(cmd *cobra.Command, f *flags, input string, opts sheetreport.Options, format output.Format) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := sheetreport.NewCache(opts, 0)
	return sheetreport.Watch(ctx, input, opts, cache, func(u sheetreport.Update) {
		if u.Err != nil {
			opts.Logger.Error("reload failed", slog.String("error", u.Err.Error()))
			return
		}
		if !u.Changed {
			opts.Logger.Debug("workbook unchanged")
			return
		}
		if err := emit(cmd.OutOrStdout(), f, u.Report, format); err != nil {
			opts.Logger.Error("write failed", slog.String("error", err.Error()))
		}
	})
}
