package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/example/littlelemon/internal/booking"
	"github.com/example/littlelemon/internal/config"
	"github.com/example/littlelemon/internal/kv"
	"github.com/example/littlelemon/internal/logging"
	"github.com/google/uuid"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// openVisitorStore opens the configured backend and scopes it to visitor.
// The returned close func releases the backend and flushes the logger.
func openVisitorStore(ctx context.Context, visitor string) (*booking.Store, func() error, error) {
	if _, err := uuid.Parse(visitor); err != nil {
		return nil, nil, fmt.Errorf("invalid visitor id %q: %w", visitor, err)
	}
	cfg, err := config.StoreFromEnv()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(logging.Options{DevMode: cfg.DevMode, Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, nil, err
	}
	backend, err := kv.Open(ctx, cfg.StoreOptions())
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	closeFn := func() error {
		err := backend.Close()
		_ = log.Sync()
		return err
	}
	ns := kv.WithQuota(kv.Namespace(backend, kv.VisitorPrefix(visitor)), cfg.StoreQuotaBytes)
	loc := cfg.Location
	return booking.NewStore(ns, log, func() time.Time { return time.Now().In(loc) }), closeFn, nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
