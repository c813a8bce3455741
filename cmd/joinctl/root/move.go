package root

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Novip1906/join/internal/ui"
)

func newMoveCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id> <status>",
		Short: "Move a task to another column",
		Long:  "Move a task to another column. Status may be a name (\"in progress\") or a column id (inProgress).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("task id must be a number: %q", args[0])
			}

			svc, cleanup, err := openServices(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := svc.board.MoveTask(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconDone), task.Title, ui.Muted.Render("->"), task.Status.Title())
			return nil
		},
	}
	return cmd
}
