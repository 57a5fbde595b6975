package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-gin-yakshop/internal/app/api"
)

func main() {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	fs := flag.NewFlagSet("yakshop-api", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] [herd-file]\n", fs.Name())
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.HTTPHost, "http-host", cfg.HTTPHost, "address to bind (HTTP_HOST)")
	fs.StringVar(&cfg.Port, "http-port", cfg.Port, "port to listen on (PORT)")
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() > 0 {
		cfg.HerdPath = fs.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := api.Run(ctx, cfg); err != nil {
		log.Fatalf("yakshop api failed: %v", err)
	}
}
