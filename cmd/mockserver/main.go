package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Michaelcode2/pricechecker/config"
	"github.com/Michaelcode2/pricechecker/internal/app"
	"github.com/Michaelcode2/pricechecker/internal/mockapi"
)

var (
	cfile = flag.String("c", "", "config file")
	addr  = flag.String("addr", "", "listen address, overrides mock.addr")
)

func main() {
	flag.Parse()
	cfg, err := config.LoadConfig(*cfile)
	if err != nil {
		panic(err)
	}
	if err := app.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = zap.L().Sync() }()

	if *addr != "" {
		cfg.Mock.Addr = *addr
	}
	srv := mockapi.New(mockapi.Config{
		Addr:   cfg.Mock.Addr,
		ApiKey: cfg.Mock.ApiKey,
		Seed:   cfg.Mock.Seed,
		Delay:  time.Duration(cfg.Mock.DelayMs) * time.Millisecond,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Start(); err != nil {
		zap.L().Fatal("mock lookup service failed", zap.Error(err))
	}
}
