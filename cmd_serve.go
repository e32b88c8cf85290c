package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordler/internal/httpserver"
	"github.com/robalobadob/wordler/internal/store"
)

func newServeCmd(cfg Config) *cobra.Command {
	port := cfg.Port
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dict, err := loadDictionary(ctx, cfg)
			if err != nil {
				return err
			}
			srv := httpserver.New(store.NewMemoryStore(), dict, httpserver.Config{
				JWTSecret:  cfg.JWTSecret,
				DailySalt:  cfg.DailySalt,
				MaxGuesses: cfg.MaxGuesses,
				WordLength: cfg.WordLength,
				Origin:     os.Getenv("CLIENT_ORIGIN"),
			})
			log.Info().Str("port", port).Int("words", dict.Len()).Msg("starting wordler server")
			if err := srv.Run(ctx, ":"+port); err != nil {
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", port, "listen port")
	return cmd
}
