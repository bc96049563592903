package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lunarcal/internal/config"
	"github.com/tartampluch/go-lunarcal/internal/server"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions and a today feed over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.settings
			srv := server.NewLunarServer(s.Addr(), a.generator(), a.catalog, s.Language)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return srv.Start(ctx) })
			interval := time.Duration(s.RefreshInterval) * time.Minute
			g.Go(func() error { return srv.RunRefresher(ctx, interval) })
			if err := g.Wait(); err != nil {
				return err
			}

			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}

	// Applied to the settings by setup, before validation.
	cmd.Flags().StringP(config.FlagPort, "p", config.DefaultPort, config.FlagDescPort)
	cmd.Flags().Int(config.FlagRefresh, config.DefaultRefreshMin, config.FlagDescRefr)
	return cmd
}
