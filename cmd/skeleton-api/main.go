package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/skeleton-api/internal/config"
	"github.com/ironsheep/skeleton-api/internal/server"
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
			fmt.Printf("skeleton-api %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("skeleton-api - HTTP service for image skeletonization")
			fmt.Println()
			fmt.Println("Usage: skeleton-api [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PORT=8000                         Port to listen on")
			fmt.Println("  ENVIRONMENT=production            Allow production CORS origins")
			fmt.Println("  SKELETON_API_CONFIG=config.yaml   Optional YAML config file")
			fmt.Println("  SKELETON_API_LOG_LEVEL=debug      Enable debug logging")
			fmt.Println()
			fmt.Println("Endpoints:")
			fmt.Println("  GET  /              Health check")
			fmt.Println("  POST /skeletonize   Upload an image as form field 'file'")
			return
		}
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Skeleton API v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Environment: %s, CORS origins: %v", cfg.Environment, cfg.Origins())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
