package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/spf13/cobra"

	boxApi "github.com/boxmaker/boxmaker-web/internal/box/api"
	"github.com/boxmaker/boxmaker-web/internal/common"
	"github.com/boxmaker/boxmaker-web/internal/cron"
	miscApi "github.com/boxmaker/boxmaker-web/internal/misc/api"
	"github.com/boxmaker/boxmaker-web/pkg/format"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the box form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	}
	cmd.Flags().Int("port", 0, "port to listen on (default 8080)")
	a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func (a *app) serve(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer log.Close()

	log.Info("---------------------------------------------------------------------------")

	// Initialize services
	boxSvc, renderer, err := newBoxService(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize box service: %w", err)
	}
	log.Info("Box tool: %s", format.FormatCommand(renderer.Command()))
	log.Info("Box tool timeout: %s, reclaim age: %s",
		common.FormatDurationConcise(cfg.Box.Timeout),
		common.FormatDurationConcise(cfg.Box.ReclaimAge))

	// Initialize cron manager
	cronManager := cron.NewManager(log, boxSvc, cfg.Box.ReclaimSchedule)
	if err := cronManager.Start(); err != nil {
		return err
	}
	defer cronManager.Stop()

	// Initialize API handlers
	boxHandler, err := boxApi.NewBoxHandler(boxSvc, log)
	if err != nil {
		return fmt.Errorf("failed to initialize box handler: %w", err)
	}
	miscHandler := miscApi.NewMiscHandler()

	// Create REST API container
	container := restful.NewContainer()
	ws := new(restful.WebService)
	ws.Path("/")

	// Register routes
	boxApi.RegisterRoutes(ws, boxHandler)
	miscApi.RegisterRoutes(ws, miscHandler)
	container.Add(ws)

	// Log API endpoints
	endpoints := make([]format.APIEndpoint, 0, len(ws.Routes()))
	for _, route := range ws.Routes() {
		endpoints = append(endpoints, format.APIEndpoint{
			Method:      route.Method,
			Path:        route.Path,
			Description: route.Doc,
		})
	}
	format.LogAPIEndpoints(log, endpoints)

	// Add CORS filter for the JSON endpoints
	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedDomains: []string{"*"},
		Container:      container,
	}
	container.Filter(cors.Filter)
	container.Filter(common.RequestLogger(log))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Success("Starting server on %s", addr)
	log.Info("Accessible URLs:")
	for _, host := range common.AccessibleHosts() {
		log.Info("  %s", log.Highlight(fmt.Sprintf("http://%s:%d", host, cfg.Server.Port)))
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           container,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
	}
	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited properly")
	return nil
}
