package cmd

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-hit-matcher/api"
	"github.com/gcbaptista/go-hit-matcher/config"
	"github.com/gcbaptista/go-hit-matcher/internal/analytics"
	"github.com/gcbaptista/go-hit-matcher/internal/engine"
)

// serveOptions are the flags that override the config file.
type serveOptions struct {
	port    string
	workers int
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.port, "port", "", "Port to run the server on (default 8080)")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "Partitions matched in parallel per request (default GOMAXPROCS)")
}

func (o *serveOptions) apply(cfg *config.ServerConfig) {
	if o.port != "" {
		cfg.Port = o.port
	}
	if o.workers > 0 {
		cfg.Matcher.Workers = o.workers
	}
}

// newServeCmd creates the serve command.
func newServeCmd(configPath *string) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Example: `  hitmatch serve                          # Start server on default port 8080
  hitmatch serve --port 9000              # Start server on port 9000
  hitmatch serve --config hitmatch.yaml   # Load settings from a config file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runServe(cfg, opts)
		},
	}
	opts.bind(cmd)

	return cmd
}

// newRouter builds the gin engine with the middleware chain and all routes.
func newRouter(cfg config.ServerConfig, matchEngine *engine.Engine) *gin.Engine {
	router := gin.Default()
	router.Use(api.RequestIDMiddleware())
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(cfg.MaxRequestBytes))

	api.SetupRoutes(router, matchEngine, analytics.NewService())
	return router
}

func runServe(cfg config.ServerConfig, opts *serveOptions) error {
	opts.apply(&cfg)

	matchEngine, err := engine.NewEngine(cfg.Matcher, cfg.JobWorkers)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer matchEngine.Stop()

	router := newRouter(cfg, matchEngine)

	log.Printf("Starting server on port %s (%d workers, window %g)...", cfg.Port, matchEngine.Settings().Workers, matchEngine.Settings().DefaultWindow)
	if err := router.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
