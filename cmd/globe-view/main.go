package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jeslor/globe-with-connecting-cities/internal/logging"
	"github.com/jeslor/globe-with-connecting-cities/pkg/config"
)

var (
	// Version information (set by build flags)
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show version
	if *showVersion {
		fmt.Printf("globe-view version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	// Show help
	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The log panel mirrors the file log
	logs := NewLogManager(100)
	logger := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Mirror:     logs.Mirror,
	})
	defer logger.Close()

	app, err := NewApp(&AppConfig{
		Config:     cfg,
		ConfigPath: *configPath,
		Logger:     logger,
		Logs:       logs,
	})
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}

	if err := app.Run(); err != nil {
		logger.Close()
		log.Fatalf("Application error: %v", err)
	}
}

// printHelp prints usage information
func printHelp() {
	fmt.Println("globe-view - Animated globe with flight arcs between cities")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  globe-view [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Println("        Path to configuration file (default: configs/config.json)")
	fmt.Println("  -version")
	fmt.Println("        Show version information")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println()
	fmt.Println("KEYBOARD SHORTCUTS:")
	fmt.Println("  Camera:")
	fmt.Println("    ←/→ or h/l     Orbit around the globe")
	fmt.Println("    ↑/↓ or k/j     Tilt")
	fmt.Println("    +/- or wheel   Zoom")
	fmt.Println("    0              Reset camera")
	fmt.Println("    mouse drag     Orbit (auto-rotate resumes when idle)")
	fmt.Println()
	fmt.Println("  Display:")
	fmt.Println("    p or SPACE     Pause / resume")
	fmt.Println("    n              Toggle city names")
	fmt.Println()
	fmt.Println("  Control:")
	fmt.Println("    q or ESC       Quit")
	fmt.Println()
	fmt.Println("ENVIRONMENT:")
	fmt.Println("  GLOBE_* variables and a .env file next to the config override settings.")
}
