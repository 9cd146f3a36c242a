package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olivierh59500/microsims/internal/config"
	"github.com/olivierh59500/microsims/internal/export"
	"github.com/olivierh59500/microsims/internal/host"
	"github.com/olivierh59500/microsims/internal/logutil"
	"github.com/olivierh59500/microsims/internal/sims"
	"github.com/olivierh59500/microsims/internal/store"
)

func main() {
	configPath := flag.String("config", "microsims.yaml", "path to the YAML config file")
	name := flag.String("sketch", "", "sketch to open (overrides the config)")
	list := flag.Bool("list", false, "list the available sketches and exit")
	flag.Parse()

	if *list {
		for _, n := range sims.Names() {
			fmt.Println(n)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *name != "" {
		cfg.Sketch = *name
	}
	log := logutil.New(os.Stderr, logutil.ParseLevel(cfg.LogLevel), "")
	if err := run(cfg, log); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logutil.Logger) error {
	deps := sims.Deps{Log: log, Export: export.New(cfg.ExportDir, log), TPS: cfg.TPS}
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		db, err := store.Open(filepath.Join(cfg.DataDir, "microsims.db"))
		if err != nil {
			return err
		}
		defer db.Close()
		deps.Saved = db.List
	}

	s, err := sims.New(cfg.Sketch, deps)
	if err != nil {
		return fmt.Errorf("%w; available: %v", err, sims.Names())
	}

	// Run the game loop
	return host.Run(host.New(s, log), cfg)
}
