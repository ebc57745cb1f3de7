package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/event-marketplace/pkg/client"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderation and reporting (admin only)",
	}
	cmd.AddCommand(adminDashboardCmd(), adminApproveCmd(), adminRejectCmd(), adminSupportCmd())
	return cmd
}

func adminDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline stats, pending vendors and growth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := api.Admin.LoadDashboard(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			s := o.Stats
			fmt.Fprintf(out, "users %d  vendors %d (%d pending)  events %d  contracts %d  revenue %.2f\n",
				s.TotalUsers, s.TotalVendors, s.PendingVendors, s.TotalEvents, s.TotalContracts, s.TotalRevenue)
			fmt.Fprintf(out, "open support chats: %d\n", len(o.SupportChats))

			fmt.Fprintln(out, "\nPending vendors:")
			if err := printVendors(out, o.PendingVendors); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nBest vendors:")
			if err := printVendors(out, o.BestVendors); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nGrowth:")
			tw := table(out, "MONTH", "USERS", "VENDORS", "EVENTS")
			for _, p := range o.Growth {
				row(tw, p.Month, p.Users, p.Vendors, p.Events)
			}
			return tw.Flush()
		},
	}
}

func adminApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <vendor-id>",
		Short: "Approve a pending vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := api.Admin.ApproveVendor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", v.BusinessName, v.Status)
			return nil
		},
	}
}

func adminRejectCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "reject <vendor-id>",
		Short: "Reject a pending vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := api.Admin.RejectVendor(cmd.Context(), args[0], reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", v.BusinessName, v.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason shown to the vendor")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func adminSupportCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "support",
		Short: "List support chats by last activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			show := func(ctx context.Context) error {
				chats, err := api.Admin.SupportChats(ctx)
				if err != nil {
					return err
				}
				return printChats(cmd.OutOrStdout(), chats)
			}
			if !watch {
				return show(cmd.Context())
			}
			poller := client.NewPoller(client.SupportPollInterval)
			poller.OnError = func(err error) { fmt.Fprintln(cmd.ErrOrStderr(), "poll:", err) }
			return poller.Run(cmd.Context(), show)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "refresh until interrupted")
	return cmd
}
