package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Novip1906/join/internal/service"
	"github.com/Novip1906/join/internal/ui"
)

func newContactsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List contacts grouped by letter",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openServices(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			contacts, err := svc.contacts.ListContacts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconContact, "Contacts"))
			if len(contacts) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No contacts yet. Run `joinctl seed` to add the demo contacts."))
				return nil
			}

			for _, group := range service.GroupContacts(contacts) {
				fmt.Fprintln(out, ui.H2.Render(group.Letter))
				for _, c := range group.Contacts {
					fmt.Fprintf(out, "  %s %s %s\n", ui.Key.Render(service.Initials(c.Name)), c.Name, ui.Muted.Render(c.Email))
				}
			}
			return nil
		},
	}
	return cmd
}
