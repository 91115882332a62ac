package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netbadge-ctrl/okboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var plain bool
	var width int

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the team schedule board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Interactive && !plain {
				model := newBoardModel(app)
				_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
				return err
			}

			board, _, err := app.Boards.Board(context.Background(), app.Config.DefaultView)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatBoard(board, width))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the board without the interactive UI")
	cmd.Flags().IntVar(&width, "width", formatter.DefaultBoardWidth, "Chart width in columns for plain output")

	return cmd
}
