package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/event-marketplace/pkg/client"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send and follow chat messages",
	}
	cmd.AddCommand(chatSendCmd(), chatWatchCmd())
	return cmd
}

func chatSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <chat-id> <message>",
		Short: "Send a message to a chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := api.Messages.Send(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), *msg)
			return nil
		},
	}
}

func chatWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <chat-id>",
		Short: "Print new messages every few seconds until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID := args[0]
			out := cmd.OutOrStdout()
			seen := map[string]bool{}

			poller := client.NewPoller(client.MessagePollInterval)
			poller.OnError = func(err error) { fmt.Fprintln(cmd.ErrOrStderr(), "poll:", err) }
			return poller.Run(cmd.Context(), func(ctx context.Context) error {
				msgs, err := api.Messages.ListByChat(ctx, chatID)
				if err != nil {
					return err
				}
				fresh := false
				for _, m := range msgs {
					if seen[m.ID] {
						continue
					}
					seen[m.ID] = true
					fresh = true
					printMessage(out, m)
				}
				if fresh {
					_, err = api.Messages.MarkSeen(ctx, chatID)
				}
				return err
			})
		},
	}
}
