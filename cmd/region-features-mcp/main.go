package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/region-features-mcp/internal/config"
	"github.com/ironsheep/region-features-mcp/internal/logger"
	"github.com/ironsheep/region-features-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("region-features-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("region-features-mcp - MCP server for region feature analysis")
			fmt.Println()
			fmt.Println("Usage: region-features-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  REGION_FEATURES_CONFIG=<path>      YAML configuration file")
			fmt.Println("  REGION_FEATURES_LOG_LEVEL=debug    Override the configured log level")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.LoadConfig(os.Getenv("REGION_FEATURES_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "region-features-mcp: %v\n", err)
		os.Exit(1)
	}

	// Log to stderr (stdout is for MCP protocol)
	level := cfg.Log.Level
	if env := os.Getenv("REGION_FEATURES_LOG_LEVEL"); env != "" {
		level = env
	}
	log := logger.New(os.Stderr, logger.ParseLevel(level), "mcp")
	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("region features MCP server starting")

	srv := server.New(
		server.WithConfig(cfg),
		server.WithLogger(log),
		server.WithVersion(Version),
	)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
