package main

import (
	"context"
	"net"

	emogin "github.com/fwojciec/emoscope/gin"
	ginlib "github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		host    string
		port    int
		preload bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Long: `Serve the HTTP API until interrupted, then shut down gracefully.

Endpoints: POST /api/v1/analyze, GET /api/v1/badges, GET /health,
GET /ready, and GET /metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ln, err := net.Listen("tcp", cfg.Server.Addr())
			if err != nil {
				return err
			}
			return app.serve(cmd.Context(), ln, preload)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (default from config: 127.0.0.1)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config: 8080)")
	cmd.Flags().BoolVar(&preload, "preload", false, "load the model at startup instead of on first request")
	return cmd
}

// serve runs the API on ln until ctx is done.
func (a *App) serve(ctx context.Context, ln net.Listener, preload bool) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := emogin.NewMetrics(reg)

	ginlib.SetMode(ginlib.ReleaseMode)
	handler := emogin.NewHandler(a.Analyzer, a.Provider, a.Health, metrics)
	router := emogin.NewRouter(handler, a.Logger, metrics, reg)

	if preload {
		go func() {
			if _, err := a.Provider.Get(ctx); err != nil {
				a.Logger.Error("preload failed", zap.Error(err))
			}
		}()
	}

	a.Logger.Info("serving",
		zap.String("addr", ln.Addr().String()),
		zap.String("backend", a.Config.Backend),
		zap.String("model", a.Provider.Model()),
	)
	return emogin.NewServer(ln.Addr().String(), router, a.Logger).Serve(ctx, ln)
}
