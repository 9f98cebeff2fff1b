package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ukaji3/xlviz-go/pkg/xlviz"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/catalogue"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/export"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Newf("invalid id %q", s)
	}
	return id, nil
}

type summary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Chart      string `json:"chart"`
	DataSource string `json:"dataSource"`
	FileName   string `json:"fileName"`
	Rows       int    `json:"rows"`
}

func catalogueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalogue",
		Aliases: []string{"catalog"},
		Short:   "Manage saved visualizations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved visualizations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(store *catalogue.Store) error {
				out := []summary{}
				for _, v := range store.List() {
					out = append(out, summary{
						ID:         v.ID,
						Title:      v.Title,
						Chart:      v.ChartDefinition.ID,
						DataSource: v.DataSourceName,
						FileName:   v.FileName,
						Rows:       v.ChartData.Len(),
					})
				}
				return emit(cmd, out)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved visualization and its chart data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(store *catalogue.Store) error {
				viz, err := store.Get(id)
				if err != nil {
					return err
				}
				out, err := xlviz.ShapeSaved(viz, xlviz.WithLogger(logger))
				if err != nil {
					return err
				}
				return emit(cmd, map[string]interface{}{"visualization": viz, "chart": out})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved visualization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(store *catalogue.Store) error {
				return store.Delete(cmd.Context(), id)
			})
		},
	})

	var (
		outputPath string
		original   string
	)
	exportProject := &cobra.Command{
		Use:   "export",
		Short: "Write the catalogue to a project file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(store *catalogue.Store) error {
				data, name, err := store.Export(original)
				if err != nil {
					return err
				}
				if outputPath == "" {
					outputPath = name
				}
				if err := os.WriteFile(outputPath, data, 0644); err != nil {
					return errors.Wrap(err, "failed to write project")
				}
				fmt.Fprintln(cmd.OutOrStdout(), outputPath)
				return nil
			})
		},
	}
	exportProject.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: derived from the workbook name)")
	exportProject.Flags().StringVar(&original, "original", "", "Original workbook file name")
	cmd.AddCommand(exportProject)

	cmd.AddCommand(&cobra.Command{
		Use:   "import <project.xlviz>",
		Short: "Replace the catalogue with a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(xlviz.ErrFileNotFound, "%s", args[0])
			}
			return withStore(cmd.Context(), func(store *catalogue.Store) error {
				p, err := store.Import(cmd.Context(), data, filepath.Base(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d visualizations from %s\n", len(p.SavedVisualizations), p.OriginalFileName)
				return nil
			})
		},
	})

	return cmd
}

func exportCmd() *cobra.Command {
	var (
		formatName string
		outputPath string
		width      int
		height     int
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Render a saved visualization as PNG or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(store *catalogue.Store) error {
				viz, err := store.Get(id)
				if err != nil {
					return err
				}
				out, err := xlviz.ShapeSaved(viz, xlviz.WithLogger(logger))
				if err != nil {
					return err
				}

				f := export.Format(formatName)
				if outputPath == "" {
					outputPath = export.FileName(viz.DataSourceName, viz.ChartDefinition.ID, f)
				}
				file, err := os.Create(outputPath)
				if err != nil {
					return errors.Wrap(err, "failed to create output")
				}
				err = export.Write(file, f, export.Request{
					Definition: viz.ChartDefinition,
					Output:     out,
					Options:    viz.ChartOptions,
					Width:      width,
					Height:     height,
				})
				if cerr := file.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					os.Remove(outputPath)
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), outputPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "png", "Export format: png or html")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <source>_<chart>.<format>)")
	cmd.Flags().IntVar(&width, "width", export.DefaultWidth, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", export.DefaultHeight, "Image height in pixels")
	return cmd
}
