// Command gridview browses a spreadsheet, or a generated table, in a
// terminal grid.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/internal/sample"
	"github.com/go-theft-auto/grid/rules"
	"github.com/go-theft-auto/grid/tui"
	"github.com/go-theft-auto/grid/xlsx"
)

var (
	logPath  string
	verbose  bool
	sheet    string
	pageSize int
	rows     int
	cols     int
	rule     string
	saveAs   string
	readOnly bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridview [input.xlsx]",
		Short: "Browse a spreadsheet in a terminal grid",
		Long: `gridview shows the first sheet of an .xlsx workbook, loading rows a page
at a time as you scroll. Without a file it shows a generated table.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&logPath, "log", "", "Append logs to this file (the terminal belongs to the grid)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to open (default: first sheet)")
	rootCmd.Flags().IntVar(&pageSize, "page-size", xlsx.DefaultPageSize, "Rows read per page")
	rootCmd.Flags().IntVar(&rows, "rows", 10000, "Rows of the generated table")
	rootCmd.Flags().IntVar(&cols, "cols", 40, "Columns of the generated table")
	rootCmd.Flags().StringVar(&rule, "rule", "", `Edit permission expression, e.g. 'record.status != "done"'`)
	rootCmd.Flags().StringVarP(&saveAs, "output", "o", "", "Write the edited workbook here on exit")
	rootCmd.Flags().BoolVar(&readOnly, "read-only", false, "Disable editing")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	grid.SetVerbose(verbose)
	if logPath != "" {
		logger, f, err := grid.NewFileLogger(logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		grid.SetLogger(logger)
		slog.SetDefault(logger)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		provider grid.DataProvider
		columns  []grid.Column
		book     *xlsx.Provider
	)
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); err != nil {
			return fmt.Errorf("file not found: %s", args[0])
		}
		var opts []xlsx.Option
		if sheet != "" {
			opts = append(opts, xlsx.WithSheet(sheet))
		}
		opts = append(opts, xlsx.WithPageSize(pageSize), xlsx.WithLogger(slog.Default()))
		p, err := xlsx.Open(ctx, args[0], opts...)
		if err != nil {
			return fmt.Errorf("open workbook: %w", err)
		}
		defer p.Close()
		book = p
		provider, columns = p, p.Columns()
	} else {
		if saveAs != "" {
			return fmt.Errorf("--output needs an input workbook")
		}
		columns = sample.Columns(cols)
		provider = sample.NewProvider(rows, columns)
	}

	var gridOpts []grid.Option
	if !readOnly {
		perm, err := rules.Permission(rule, columns)
		if err != nil {
			return fmt.Errorf("rule: %w", err)
		}
		gridOpts = append(gridOpts, grid.WithPermission(perm))
	}

	m, err := tui.New(provider, columns, tui.WithGridOptions(gridOpts...))
	if err != nil {
		return err
	}
	if err := tui.Run(m); err != nil {
		return err
	}

	if book != nil && saveAs != "" {
		if err := book.SaveAs(saveAs); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		slog.Info("workbook saved", "path", saveAs)
	}
	return nil
}
