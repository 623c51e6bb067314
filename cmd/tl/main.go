package main

import (
	"fmt"
	"os"

	"timelog/internal/cli"
	"timelog/internal/config"
	"timelog/internal/logging"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Debugf("using database %s", cfg.GetDatabasePath())

	root := cli.NewRootCommand(cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
