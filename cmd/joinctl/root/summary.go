package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Novip1906/join/internal/ui"
)

func newSummaryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show task counts and the next urgent deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openServices(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			sum, err := svc.board.Summary(cmd.Context())
			if err != nil {
				return err
			}

			deadline := sum.UpcomingDeadline
			if deadline == "" {
				deadline = ui.Muted.Render("none")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconInfo, "Summary"))
			fmt.Fprintln(out, ui.LabelValue("To do", sum.ToDo))
			fmt.Fprintln(out, ui.LabelValue("In progress", sum.InProgress))
			fmt.Fprintln(out, ui.LabelValue("Await feedback", sum.AwaitFeedback))
			fmt.Fprintln(out, ui.LabelValue("Done", sum.Done))
			fmt.Fprintln(out, ui.LabelValue("Tasks in board", sum.Total))
			fmt.Fprintln(out, ui.LabelValue("Urgent", sum.Urgent))
			fmt.Fprintln(out, ui.LabelValue("Upcoming deadline", deadline))
			return nil
		},
	}
	return cmd
}
