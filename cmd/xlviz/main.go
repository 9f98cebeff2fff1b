// Package main provides the CLI entry point for xlviz.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/xlviz-go/pkg/xlviz"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/catalogue"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/output"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/parser"
)

var (
	storePath string
	backend   string
	verbose   bool
	pretty    bool

	logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlviz",
		Short: "Turn spreadsheet data into charts",
		Long: `xlviz reads sheets and tables from Excel workbooks, shapes them for
a chart type and keeps a catalogue of saved visualizations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
			}
			return nil
		},
	}

	defaultStore := os.Getenv("XLVIZ_STORE")
	if defaultStore == "" {
		defaultStore = "./xlviz-store"
	}
	rootCmd.PersistentFlags().StringVar(&storePath, "store", defaultStore, "Catalogue location (env XLVIZ_STORE)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "file", "Catalogue backend: file, sqlite, memory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		sourcesCmd(),
		previewCmd(),
		typesCmd(),
		valuesCmd(),
		chartsCmd(),
		shapeCmd(),
		saveCmd(),
		catalogueCmd(),
		exportCmd(),
	)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func emit(cmd *cobra.Command, v interface{}) error {
	return output.WriteJSON(cmd.OutOrStdout(), v, pretty)
}

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources <input.xlsx>",
		Short: "List the sheets and tables of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); os.IsNotExist(err) {
				return errors.Wrapf(xlviz.ErrFileNotFound, "%s", args[0])
			}
			wb, err := parser.Open(args[0], parser.Options{Logger: logger})
			if err != nil {
				return errors.Wrap(err, "Failed to parse the Excel file")
			}
			defer wb.Close()
			return emit(cmd, wb.Sources())
		},
	}
}

func previewCmd() *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "preview <input.xlsx> <source>",
		Short: "Show the first rows of a sheet or table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := xlviz.OpenSession(args[0], args[1], xlviz.WithLogger(logger))
			if err != nil {
				return errors.Wrap(err, "Failed to extract data from the selected source")
			}
			return emit(cmd, output.Preview(s.Data, s.Types(), s.Format, rows))
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "Number of rows to show")
	return cmd
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types <input.xlsx> <source>",
		Short: "Show the inferred column types",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := xlviz.OpenSession(args[0], args[1], xlviz.WithLogger(logger))
			if err != nil {
				return errors.Wrap(err, "Failed to extract data from the selected source")
			}
			return emit(cmd, s.Types())
		},
	}
}

func valuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "values <input.xlsx> <source> <column>",
		Short: "List the filter choices of a column in sorted order",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := xlviz.OpenSession(args[0], args[1], xlviz.WithLogger(logger))
			if err != nil {
				return errors.Wrap(err, "Failed to extract data from the selected source")
			}
			choices, err := s.FilterChoices(args[2])
			if err != nil {
				return err
			}
			return emit(cmd, choices)
		},
	}
}

func chartsCmd() *cobra.Command {
	var palettes bool
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "List the chart types and their dimensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if palettes {
				return emit(cmd, charts.Palettes())
			}
			return emit(cmd, charts.Definitions())
		},
	}
	cmd.Flags().BoolVar(&palettes, "palettes", false, "List colour palettes instead")
	return cmd
}

func shapeCmd() *cobra.Command {
	var sf sessionFlags
	cmd := &cobra.Command{
		Use:   "shape <input.xlsx> <source>",
		Short: "Shape a source for a chart type and print the chart data",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.session(args[0], args[1])
			if err != nil {
				return err
			}
			out, err := s.Shape()
			if err != nil {
				return err
			}
			return emit(cmd, out)
		},
	}
	sf.register(cmd.Flags())
	return cmd
}

func saveCmd() *cobra.Command {
	var (
		sf    sessionFlags
		title string
	)
	cmd := &cobra.Command{
		Use:   "save <input.xlsx> <source>",
		Short: "Save a visualization to the catalogue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.session(args[0], args[1])
			if err != nil {
				return err
			}
			viz, err := s.Snapshot(title)
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(store *catalogue.Store) error {
				rec, err := store.Add(cmd.Context(), viz)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %d\n", rec.ID)
				return nil
			})
		},
	}
	sf.register(cmd.Flags())
	cmd.Flags().StringVar(&title, "title", "", "Visualization title")
	return cmd
}

// withStore opens the configured catalogue, loads it and runs fn.
func withStore(ctx context.Context, fn func(*catalogue.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var storage catalogue.Storage
	switch backend {
	case "file":
		storage = catalogue.NewFileStorage(storePath)
	case "sqlite":
		if err := os.MkdirAll(storePath, 0o755); err != nil {
			return err
		}
		db, err := catalogue.OpenSQLite(ctx, filepath.Join(storePath, "catalogue.db"))
		if err != nil {
			return err
		}
		defer db.Close()
		storage = db
	case "memory":
		storage = catalogue.NewMemoryStorage()
	default:
		return errors.Newf("invalid backend: %s (must be file, sqlite, or memory)", backend)
	}

	store := catalogue.New(storage, catalogue.Options{Logger: logger})
	if err := store.Load(ctx); err != nil {
		return err
	}
	return fn(store)
}
