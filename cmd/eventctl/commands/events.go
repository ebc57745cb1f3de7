package commands

import (
	"github.com/spf13/cobra"
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show planned events",
	}
	cmd.AddCommand(eventsListCmd(false), eventsListCmd(true))
	return cmd
}

func eventsListCmd(upcoming bool) *cobra.Command {
	var userID string
	use, short := "list", "List events"
	if upcoming {
		use, short = "upcoming", "List upcoming events that are not cancelled"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				user, err := currentUser()
				if err != nil {
					return err
				}
				userID = user.ID
			}
			fetch := api.Events.ListByUser
			if upcoming {
				fetch = api.Events.Upcoming
			}
			events, err := fetch(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printEvents(cmd.OutOrStdout(), events)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (default: signed-in user)")
	return cmd
}
