package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/event-marketplace/pkg/client"
)

func vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Browse vendors",
	}
	cmd.AddCommand(vendorsListCmd(), vendorsShowCmd(), vendorsFeaturedCmd())
	return cmd
}

func vendorsListCmd() *cobra.Command {
	var q client.VendorQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List approved vendors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vendors, err := api.Vendors.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printVendors(cmd.OutOrStdout(), vendors)
		},
	}
	cmd.Flags().StringVar(&q.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&q.Location, "location", "", "filter by location")
	cmd.Flags().StringVar(&q.Search, "search", "", "search name and description")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.PageSize, "page-size", 0, "page size (server default when 0)")
	return cmd
}

func vendorsFeaturedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "List featured vendors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vendors, err := api.Vendors.Featured(cmd.Context())
			if err != nil {
				return err
			}
			return printVendors(cmd.OutOrStdout(), vendors)
		},
	}
}

func vendorsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <vendor-id>",
		Short: "Show a vendor with its packages and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := api.Vendors.Details(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			v := d.Vendor
			fmt.Fprintf(out, "%s (%s, %s)\n", v.BusinessName, v.Category, v.Location)
			fmt.Fprintf(out, "rating %.1f from %d reviews, from %.2f\n", v.Rating, v.ReviewCount, v.PriceFrom)
			if v.Description != "" {
				fmt.Fprintf(out, "\n%s\n", v.Description)
			}

			if len(d.Packages) > 0 {
				fmt.Fprintln(out, "\nPackages:")
				tw := table(out, "ID", "NAME", "PRICE")
				for _, p := range d.Packages {
					row(tw, p.ID, p.Name, fmt.Sprintf("%.2f", p.Price))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			if len(d.Reviews) > 0 {
				fmt.Fprintln(out, "\nReviews:")
				for _, r := range d.Reviews {
					fmt.Fprintf(out, "  %d/5 %s: %s\n", r.Rating, r.UserName, r.Comment)
				}
			}
			return nil
		},
	}
}
