package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notes"},
		Short:   "Read your notifications",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List notifications, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := api.Notifications.List(cmd.Context())
				if err != nil {
					return err
				}
				tw := table(cmd.OutOrStdout(), "", "WHEN", "TITLE", "BODY")
				for _, n := range items {
					mark := "*"
					if n.Read {
						mark = " "
					}
					row(tw, mark, n.CreatedAt.Format("2006-01-02 15:04"), n.Title, n.Body)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "read-all",
			Short: "Mark every notification as read",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := api.Notifications.MarkAllRead(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "marked %d as read\n", n)
				return nil
			},
		},
	)
	return cmd
}
