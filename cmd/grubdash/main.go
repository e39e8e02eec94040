package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"grubdash/internal/app/api"
	"grubdash/internal/common/config"
	"grubdash/internal/common/logger"
	"grubdash/internal/microservices/notificator"
)

func main() {
	mode := flag.String("mode", "api", "api | notifier")
	port := flag.Int("port", 0, "http port (overrides PORT)")
	seed := flag.Bool("seed", false, "load sample dishes and orders (overrides SEED_DATA)")
	idMode := flag.String("id-mode", "", "uuid | sequence (overrides ID_MODE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}
	if *seed {
		cfg.SeedData = true
	}
	if *idMode != "" {
		cfg.IDMode = *idMode
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lg := logger.New("grubdash")
	lg.SetLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "api":
		err = api.Run(ctx, cfg, lg)
	case "notifier":
		err = notificator.Start(ctx, cfg.Rabbit, lg)
	default:
		fmt.Fprintln(os.Stderr, "--mode must be api or notifier")
		os.Exit(2)
	}
	if err != nil {
		lg.Error("", "fatal", "service exited", err, nil)
		cancel()
		os.Exit(1)
	}
}
