package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openhill/hillbot/internal/logging"
	"github.com/openhill/hillbot/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chat server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			level := logLevel
			if level == "" {
				level = cfg.Logging.Level
			}
			log = logging.NewConsole(level, cfg.Logging.ConsoleStyle)

			runner, sessions, responses := buildPipeline(cfg, log)
			srv := server.New(cfg.Server, runner, sessions, log)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// sweep expired cache entries so the key space does not
			// accumulate stale data over long uptimes
			sweep := time.Duration(cfg.Congress.ListTTLMinutes) * time.Minute
			go func() {
				ticker := time.NewTicker(sweep)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n := responses.Purge(); n > 0 {
							log.Debug().Int("removed", n).Msg("purged expired cache entries")
						}
					}
				}
			}()

			log.Info().
				Int("port", cfg.Server.Port).
				Str("bind", cfg.Server.Bind).
				Str("model", cfg.LLM.Model).
				Msg("starting hillbot")
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan, custom)")

	return cmd
}
