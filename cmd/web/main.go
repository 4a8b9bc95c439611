package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/verdix/verdix/internal/config"
	"github.com/verdix/verdix/internal/web"
	zlog "github.com/verdix/verdix/pkg/log"
)

var configPath = flag.String("config", "", "Path to the YAML config, env vars override it")

func run() error {
	flag.Parse()

	conf, err := config.ParseConfig(*configPath)
	if err != nil {
		return err
	}

	logger := zlog.Init(zlog.Options{
		Production: conf.Log.Production,
		File:       conf.Log.File,
		MaxSizeMB:  conf.Log.MaxSizeMB,
		MaxBackups: conf.Log.MaxBackups,
	})
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.Run(ctx, conf, logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
