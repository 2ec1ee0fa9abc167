package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"taskdeck/internal/config"
	"taskdeck/internal/kv"
	"taskdeck/internal/task"
	"taskdeck/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logger := log.New(io.Discard)
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err == nil {
		defer logFile.Close()
		logger = log.NewWithOptions(logFile, log.Options{
			ReportTimestamp: true,
			Prefix:          "taskdeck",
		})
	}

	store, err := kv.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	tasks := task.NewStore(store, logger)
	tasks.Load()

	if err := ui.Run(tasks, store, cfg, logger); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
