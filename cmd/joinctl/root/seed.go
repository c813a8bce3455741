package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Novip1906/join/internal/ui"
)

func newSeedCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add the demo contacts that are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openServices(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			added, err := svc.contacts.SeedDemoContacts(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.IconSeed, ui.LabelValue("Demo contacts added", added))
			return nil
		},
	}
	return cmd
}
