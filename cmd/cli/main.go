package main

import (
	"context"
	"os"

	"github.com/Apurer/go-gin-yakshop/internal/app/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
