package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Novip1906/join/internal/ui"
)

const Version = "0.1.0"

type options struct {
	configPath string
	memory     bool
	logLevel   string
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "joinctl",
		Short:         "Join board from the terminal",
		Long:          "joinctl reads and edits the Join kanban board through the same storage the API uses.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the config file (defaults to $CONFIG_PATH)")
	cmd.PersistentFlags().BoolVar(&opts.memory, "memory", false, "use a throwaway in-memory database")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newBoardCmd(opts),
		newMoveCmd(opts),
		newContactsCmd(opts),
		newSeedCmd(opts),
		newSummaryCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
