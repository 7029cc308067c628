package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/example/littlelemon/internal/booking"
	"github.com/spf13/cobra"
)

func newBookingsCmd() *cobra.Command {
	var visitor string

	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Inspect or reset a visitor's reservations",
	}
	cmd.PersistentFlags().StringVar(&visitor, "visitor", "", "visitor id (uuid)")
	_ = cmd.MarkPersistentFlagRequired("visitor")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print a visitor's reservations as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openVisitorStore(cmd.Context(), visitor)
			if err != nil {
				return err
			}
			defer closeFn()

			t := newTable("#", "Name", "Email", "Phone", "Date", "Time", "Guests", "Status")
			for _, r := range store.Load(cmd.Context()) {
				t.Row(strconv.Itoa(r.ID), r.Name, r.Email, r.Phone, r.Date, r.Time, r.Guests, string(r.Status))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write a visitor's reservations as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openVisitorStore(cmd.Context(), visitor)
			if err != nil {
				return err
			}
			defer closeFn()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(store.Load(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all of a visitor's reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openVisitorStore(cmd.Context(), visitor)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s for visitor %s\n", booking.StorageKey, visitor)
			return nil
		},
	})

	return cmd
}
