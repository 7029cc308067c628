package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/littlelemon/internal/config"
	"github.com/example/littlelemon/internal/kv"
	"github.com/example/littlelemon/internal/logging"
	"github.com/example/littlelemon/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the web site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			log, err := logging.New(logging.Options{DevMode: cfg.DevMode, Level: cfg.LogLevel, File: cfg.LogFile})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if cfg.EphemeralKeys {
				log.Warn("no cookie keys configured; using random keys, sessions will not survive a restart")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			backend, err := kv.Open(ctx, cfg.StoreOptions())
			if err != nil {
				return err
			}
			defer backend.Close()
			log.Info("store opened", zap.String("backend", cfg.StoreBackend), zap.String("base_url", cfg.BaseURL))

			loc := cfg.Location
			ws := web.NewServer(web.Options{
				Backend:    backend,
				Log:        log,
				Now:        func() time.Time { return time.Now().In(loc) },
				QuotaBytes: cfg.StoreQuotaBytes,
				SessionTTL: cfg.SessionTTL,
				HashKey:    cfg.CookieHashKey,
				BlockKey:   cfg.CookieBlockKey,
			})
			go ws.ExpireSessions(ctx)

			return web.Start(ctx, cfg.ListenAddr, ws.Routes(), log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}
