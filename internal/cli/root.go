package cli

import (
	"github.com/netbadge-ctrl/okboard/internal/config"
	"github.com/netbadge-ctrl/okboard/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Boards   service.BoardService
	Users    service.UserService
	Okrs     service.OkrService
	Activity service.ActivityService
	Importer service.ImportService

	Config config.Config
	// Interactive reports whether stdout is a terminal; the board command
	// picks the TUI or the plain renderer based on it.
	Interactive bool
	// ActorID identifies the operator for change-log attribution.
	ActorID string
}

// NewRootCmd creates the top-level "okboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "okboard",
		Short: "Team schedule board for OKR-tracked projects",
	}

	root.AddCommand(
		newBoardCmd(app),
		newProjectCmd(app),
		newUserCmd(app),
		newOkrCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
