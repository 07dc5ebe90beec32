// Command app serves the LIPE Core HTTP API.
package main

import (
	"flag"
	"fmt"
	"os"

	"LipeCore/internal/di"
	"LipeCore/pkg/config"
)

var version = "dev"

func main() {
	defaultPath := "config/config.yaml"
	if p := os.Getenv("LIPE_CONFIG"); p != "" {
		defaultPath = p
	}
	configPath := flag.String("config", defaultPath, "path to the YAML config (missing file means defaults)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("lipe-core", version)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "lipe-core: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return app.Run()
}
