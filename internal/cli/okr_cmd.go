package cli

import (
	"context"
	"fmt"

	"github.com/netbadge-ctrl/okboard/internal/cli/formatter"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/spf13/cobra"
)

func newOkrCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "okr",
		Short: "Browse OKR periods",
	}

	cmd.AddCommand(
		newOkrListCmd(app),
		newOkrShowCmd(app),
	)

	return cmd
}

func newOkrListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all OKR periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := app.Okrs.ListSets(context.Background())
			if err != nil {
				return err
			}
			if len(sets) == 0 {
				fmt.Println("暂无OKR")
				return nil
			}
			fmt.Print(formatter.FormatOkrSets(sets))
			return nil
		},
	}
}

func newOkrShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <period-id>",
		Short: "Show one OKR period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := app.Okrs.GetSet(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatOkrSets([]*domain.OkrSet{set}))
			return nil
		},
	}
}
