package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/danielpatrickdp/sigma-calc/internal/config"
	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/logging"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
	"github.com/danielpatrickdp/sigma-calc/internal/rpc"
)

// #region main
func main() {
	cfg := config.Load()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address (CALC_ADDR)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "history DSN (CALC_DB)")
	flag.Int64Var(&cfg.MaxSamples, "max-samples", cfg.MaxSamples, "largest sample a request may ask for (CALC_MAX_SAMPLES)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg); err != nil {
		log.Fatalf("calcd: %v", err)
	}
}

// #endregion main

// #region serve
// serve runs the calculator service until ctx is cancelled, then drains
// in-flight calls.
func serve(ctx context.Context, cfg config.Config) error {
	store, err := history.NewStore(cfg.DBPath, cfg.HistoryLimit)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}

	logger := log.New(os.Stderr, "calcd ", log.LstdFlags)
	srv := grpc.NewServer(grpc.UnaryInterceptor(logging.UnaryServerInterceptor(logger)))
	rpc.RegisterCalculatorServer(srv, rpc.NewServer(plot.NewSampler(cfg.MaxSamples), store))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Printf("listening on %s (history %s, limit %d, max samples %d)",
			lis.Addr(), cfg.DBPath, store.Limit(), cfg.MaxSamples)
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Println("shutting down")
		srv.GracefulStop()
		return nil
	})
	return g.Wait()
}

// #endregion serve
