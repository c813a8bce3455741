package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Novip1906/join/internal/service"
	"github.com/Novip1906/join/internal/ui"
)

func newBoardCmd(opts *options) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the board columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openServices(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			board, err := svc.board.Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			columns := make([]string, 0, len(board.Columns))
			for _, col := range board.Columns {
				columns = append(columns, ui.RenderColumn(col.Title, col.Tasks, service.Initials))
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBoard, "Board"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.JoinColumns(columns...))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "find", "f", "", "only show tasks whose title or description contains this text")
	return cmd
}
