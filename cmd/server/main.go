package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"xplogd-live/internal/config"
	"xplogd-live/internal/grpcclient"
	"xplogd-live/internal/ingest"
	"xplogd-live/internal/link"
	"xplogd-live/internal/mapview"
	"xplogd-live/internal/observability"
	"xplogd-live/internal/poller"
	"xplogd-live/internal/rendersvc"
	"xplogd-live/internal/server"
	"xplogd-live/internal/store"
	"xplogd-live/internal/tracking"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	logger.Info("Starting xplogd-live...", "http_port", cfg.HTTPPort, "live_url", cfg.LiveURL, "interval", cfg.PollInterval.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("xplogd-live stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("xplogd-live stopped")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// Inicializar Redis antes del server
	st, err := store.InitRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.SeenGap)
	if err != nil {
		return err
	}
	defer st.Close()

	g, ctx := errgroup.WithContext(ctx)

	layer := mapview.NewLayer()
	views := []mapview.View{layer}
	panels := mapview.Panels{layer, mapview.NewLogPanel(logger)}

	if cfg.RenderLinkAddr != "" {
		lc := link.NewClient(cfg.RenderLinkAddr, logger)
		g.Go(func() error {
			lc.Run(ctx)
			return nil
		})
		views = append(views, lc)
		panels = append(panels, lc)
	}
	if cfg.RenderGRPCAddr != "" {
		rc, err := grpcclient.NewGRPCClient(cfg.RenderGRPCAddr, logger)
		if err != nil {
			return fmt.Errorf("render client: %w", err)
		}
		defer rc.Close()
		views = append(views, rc)
		panels = append(panels, rc)
	}

	rec := tracking.NewReconciler(
		mapview.Instrument(mapview.Multi(views...)),
		panels,
		tracking.WithMaxAltitude(cfg.MaxAltitude),
		tracking.WithLogger(logger),
	)
	p := poller.New(cfg.LiveURL, cfg.PollInterval, logger)
	g.Go(func() error {
		if err := p.Run(ctx, rec.Reconcile); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	router := server.NewRouter(ingest.NewHandler(st, logger, cfg.AuditDir), layer)
	g.Go(func() error {
		return server.Start(ctx, server.New(cfg.HTTPPort, router), logger)
	})
	g.Go(func() error {
		return server.Start(ctx, observability.NewMetricsServer(cfg.MetricsPort), logger)
	})

	gs := grpc.NewServer()
	rendersvc.NewServer(layer, logger).Register(gs)
	g.Go(func() error {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return fmt.Errorf("error starting gRPC server: %w", err)
		}
		go func() {
			<-ctx.Done()
			gs.GracefulStop()
		}()
		logger.Info("gRPC render service listening", "addr", lis.Addr().String())
		return gs.Serve(lis)
	})

	return g.Wait()
}
