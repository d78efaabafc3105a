// Package main - Entry point for the titlequote quote server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"titlequote/adapters/feed"
	"titlequote/api"
	"titlequote/core/quote"
	"titlequote/internal/config"
	"titlequote/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", "", "server address (overrides config)")
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	src, err := feed.Open(cfg.Feed)
	if err != nil {
		logging.Fatal("failed to open rate feed", zap.Error(err))
	}
	rateFeed, err := feed.LoadFeed(context.Background(), src)
	if err != nil {
		logging.Fatal("failed to load rate feed", zap.Error(err))
	}

	logging.Info("rate feed loaded",
		zap.String("snapshot", rateFeed.ID()),
		zap.String("backend", cfg.Feed.Backend))

	engine := quote.NewEngine(rateFeed)
	server := api.NewServer(version, engine)

	logging.Info("titlequote server listening",
		zap.String("addr", listenAddr),
		zap.String("version", version))

	if err := server.ListenAndServe(listenAddr); err != nil {
		logging.Fatal("server exited", zap.Error(err))
	}
}
