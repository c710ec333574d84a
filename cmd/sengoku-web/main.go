package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/sengoku/internal/config"
	"github.com/peterkuimelis/sengoku/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	data, err := config.LoadData(cfg.Data)
	if err != nil {
		logger.Fatal("failed to load card data", zap.Error(err))
	}

	srv := web.NewServer(cfg, data, logger)
	addr := fmt.Sprintf(":%d", *port)
	logger.Info("sengoku web UI listening", zap.String("url", fmt.Sprintf("http://localhost:%d", *port)))
	if err := srv.ListenAndServe(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
