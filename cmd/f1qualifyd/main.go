package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/f1qualify/f1qualify/internal/fastf1"
	"github.com/f1qualify/f1qualify/internal/quali"
	"github.com/f1qualify/f1qualify/internal/render"
	"github.com/f1qualify/f1qualify/internal/server"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const version = "1.0.0"

var configPath string

func init() {
	flag.StringVar(&configPath, "c", "./config.yml", "config path")
	flag.Parse()
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// logs go to stderr so they never interleave with the MCP stdio stream
	logger.SetOutput(os.Stderr)

	config, err := quali.LoadConfig(configPath)

	if err != nil {
		logger.WithError(err).Fatalf("Could not read config at %s", configPath)
	}

	if level, err := logrus.ParseLevel(config.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Infof("Starting f1qualifyd %s", version)

	provider := fastf1.New(
		fastf1.WithBaseURL(config.ProviderBaseURL),
		fastf1.WithCacheDir(config.CacheDir),
		fastf1.WithLogger(logger),
	)

	service := server.NewService(
		quali.NewComparator(provider, logger),
		render.New(logger),
		config.OutputDir,
		config.TopK,
		logger,
	)

	var httpServer *server.HTTP

	if config.HTTPPort > 0 {
		httpServer = server.NewHTTP(config.HTTPPort, service, logger)

		if err := httpServer.Listen(); err != nil {
			logger.WithError(err).Fatal("Could not start HTTP server")
		}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	go func() {
		for range c {
			if httpServer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)

				if err := httpServer.Stop(ctx); err != nil {
					logger.WithError(err).Error("Could not stop HTTP server")
				}

				cancel()
			}

			os.Exit(0)
		}
	}()

	logger.Infof("Serving MCP on stdio, tool: compare_qualifying_laps")

	if err := mcpserver.ServeStdio(server.NewMCPServer(service, version)); err != nil {
		logger.WithError(err).Fatal("Could not serve MCP")
	}
}
