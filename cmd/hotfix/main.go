package main

import (
	"os"

	"github.com/voxelmap/hotfix/internal/cli"
	"github.com/voxelmap/hotfix/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	cfg := config.Load()
	os.Exit(cli.Execute(cfg, Version, os.Args[1:], os.Stdout, os.Stderr))
}
