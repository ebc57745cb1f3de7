package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spec-kit/event-marketplace/pkg/client"
)

func table(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func printVendors(w io.Writer, vendors []client.Vendor) error {
	tw := table(w, "ID", "NAME", "CATEGORY", "LOCATION", "RATING", "REVIEWS", "STATUS")
	for _, v := range vendors {
		row(tw, v.ID, v.BusinessName, v.Category, v.Location, fmt.Sprintf("%.1f", v.Rating), v.ReviewCount, v.Status)
	}
	return tw.Flush()
}

func printEvents(w io.Writer, events []client.Event) error {
	tw := table(w, "ID", "TITLE", "TYPE", "DATE", "GUESTS", "STATUS")
	for _, e := range events {
		row(tw, e.ID, e.Title, e.EventType, e.EventDate.Format("2006-01-02"), e.GuestCount, e.Status)
	}
	return tw.Flush()
}

func printChats(w io.Writer, chats []client.Chat) error {
	tw := table(w, "ID", "KIND", "LAST MESSAGE", "AT")
	for _, c := range chats {
		at := "-"
		if c.LastMessageAt != nil {
			at = c.LastMessageAt.Format(time.RFC3339)
		}
		row(tw, c.ID, c.Kind, c.LastMessage, at)
	}
	return tw.Flush()
}

func printMessage(w io.Writer, m client.Message) {
	fmt.Fprintf(w, "[%s] %s: %s\n", m.CreatedAt.Format("15:04:05"), m.SenderID, m.Content)
}
