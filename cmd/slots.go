package cmd

import (
	"fmt"
	"time"

	"github.com/example/littlelemon/internal/booking"
	"github.com/example/littlelemon/internal/config"
	"github.com/spf13/cobra"
)

func newSlotsCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show which time slots are open on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.StoreFromEnv()
			if err != nil {
				return err
			}
			now := time.Now().In(cfg.Location)
			if date == "" {
				date = now.Format(booking.DateLayout)
			}
			if msg := booking.ValidateDate(date, now); msg != "" {
				return fmt.Errorf("%s: %s", date, msg)
			}
			return printSlots(cmd, date, now)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	return cmd
}

func printSlots(cmd *cobra.Command, date string, now time.Time) error {
	t := newTable("Slot", "Available", "Note")
	for _, s := range booking.ComputeAvailability(date, now) {
		open := "no"
		note := ""
		if s.Available {
			open = "yes"
			note = booking.ValidateTime(s.Value, date, now)
		}
		t.Row(s.Label, open, note)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}
