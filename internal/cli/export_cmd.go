package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/netbadge-ctrl/okboard/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, _, err := app.Boards.Board(context.Background(), app.Config.DefaultView)
			if err != nil {
				return err
			}

			svgConfig := export.DefaultSVGConfig()
			if app.Config.Export.Width > 0 {
				svgConfig.Width = app.Config.Export.Width
			}
			if app.Config.Export.LabelWidth > 0 {
				svgConfig.LabelWidth = app.Config.Export.LabelWidth
			}
			if app.Config.Export.LaneHeight > 0 {
				svgConfig.LaneHeight = app.Config.Export.LaneHeight
			}

			svg := export.RenderSVG(board, svgConfig)
			if output == "" || output == "-" {
				fmt.Print(svg)
				return nil
			}
			if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("已导出 %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file ('-' for stdout)")
	return cmd
}
