package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import users, OKRs and projects from a seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Importer.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("已导入 %d 个用户、%d 个OKR周期、%d 个项目\n",
				result.UserCount, result.OkrSetCount, result.ProjectCount)
			return nil
		},
	}
}
