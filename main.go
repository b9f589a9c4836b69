package main

import (
	"github.com/reeflog/reeflog/internal/config"
	"github.com/reeflog/reeflog/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
