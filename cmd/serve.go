package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/photodrive/photodrive/internal/config"
	"github.com/photodrive/photodrive/internal/faceapi"
	"github.com/photodrive/photodrive/internal/objectstore"
	"github.com/photodrive/photodrive/internal/web"
	"github.com/photodrive/photodrive/internal/web/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Photo Drive web server.
The web server provides a browser-based upload form and a JSON API for
uploading photo batches, listing sessions and verifying faces.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := objectstore.New(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to set up object store: %w", err)
	}

	var faces handlers.FaceVerifier
	if cfg.FaceAPI.URL != "" {
		client, err := faceapi.New(cfg.FaceAPI.URL, cfg.FaceAPI.Model, cfg.FaceAPI.Detector)
		if err != nil {
			return fmt.Errorf("failed to set up face service client: %w", err)
		}
		faces = client
		fmt.Printf("Face verification enabled (%s)\n", cfg.FaceAPI.URL)
	} else {
		fmt.Println("FACE_API_URL not set, face verification disabled")
	}

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, port, host, store, faces)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Photo Drive on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
