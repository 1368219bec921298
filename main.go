package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gatmbarz123/ec2-manager/internal/allowlist"
	"github.com/gatmbarz123/ec2-manager/internal/api"
	"github.com/gatmbarz123/ec2-manager/internal/config"
	"github.com/gatmbarz123/ec2-manager/internal/provider/awsec2"
	"github.com/gatmbarz123/ec2-manager/internal/scheduler"
)

// ============================================================================
// APPLICATION ORCHESTRATOR
// ============================================================================

type Application struct {
	cfg         *config.Config
	allow       *allowlist.List
	ec2Client   *awsec2.Client
	handlers    *api.Handlers
	fleetLogger *scheduler.FleetLogger
	router      *gin.Engine
	server      *http.Server
	state       atomic.Uint32
}

const (
	stateCreated  uint32 = 0
	stateRunning  uint32 = 1
	stateStopping uint32 = 2
	stateStopped  uint32 = 3
)

func NewApplication() (*Application, error) {
	cfg := config.Load()
	log.Printf("✓ Configuration loaded (region=%s)", cfg.Region)

	allow, err := config.LoadAllowList(cfg.InstancesFile)
	if err != nil {
		return nil, err
	}
	log.Printf("✓ Allow-list loaded (%d instances)", len(allow.Entries()))

	// AWS client construction failure is not fatal: the list endpoint
	// degrades to simulated state and start/stop report a generic error.
	var ec2Client *awsec2.Client
	var provider api.Provider
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if c, err := awsec2.NewClient(ctx, cfg.Region); err != nil {
		log.Printf("⚠ AWS client unavailable, running degraded: %v", err)
	} else {
		ec2Client = c
		provider = c
		log.Println("✓ AWS EC2 client initialized")
	}

	handlers := api.NewHandlers(allow, provider)

	var fleetLogger *scheduler.FleetLogger
	if cfg.FleetLogSchedule != "" && ec2Client != nil {
		fleetLogger = scheduler.NewFleetLogger(allow, ec2Client)
		if err := fleetLogger.Schedule(cfg.FleetLogSchedule); err != nil {
			return nil, err
		}
		log.Printf("✓ Fleet status logger scheduled (%s)", cfg.FleetLogSchedule)
	}

	app := &Application{
		cfg:         cfg,
		allow:       allow,
		ec2Client:   ec2Client,
		handlers:    handlers,
		fleetLogger: fleetLogger,
	}
	app.state.Store(stateCreated)

	return app, nil
}

func (a *Application) setupRouter() {
	r := gin.Default()
	a.router = r

	r.Use(cors.Default())
	r.Use(api.RequestIDMiddleware())
	r.Use(a.handlers.MetricsMiddleware())

	h := a.handlers
	apiGroup := r.Group("/api")

	// Instances
	apiGroup.GET("/instances", h.ListInstances)
	apiGroup.POST("/instances/:id/start", h.StartInstance)
	apiGroup.POST("/instances/:id/stop", h.StopInstance)

	// Ops
	apiGroup.GET("/health", h.GetHealth)
	apiGroup.GET("/metrics", h.GetMetrics)

	// Dashboard pages + icons
	api.RegisterStaticRoutes(r, a.cfg.WebDir)
}

func (a *Application) Start() error {
	if !a.state.CompareAndSwap(stateCreated, stateRunning) {
		return errors.New("application already started")
	}

	if a.fleetLogger != nil {
		a.fleetLogger.Start()
	}

	a.setupRouter()

	a.server = &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		log.Printf("✓ HTTP server starting on %s", a.cfg.Addr())
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	if !a.state.CompareAndSwap(stateRunning, stateStopping) {
		return errors.New("application not running")
	}

	log.Println("Initiating graceful shutdown...")

	var errs []error

	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	log.Println("✓ HTTP server stopped")

	if a.fleetLogger != nil {
		a.fleetLogger.Stop()
		log.Println("✓ Fleet status logger stopped")
	}

	a.state.Store(stateStopped)

	log.Printf("Final metrics: %+v", a.handlers.Metrics().Snapshot())

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ============================================================================
// MAIN ENTRY POINT
// ============================================================================

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	app, err := NewApplication()
	if err != nil {
		log.Fatalf("[FATAL] Application initialization failed: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("[FATAL] Application start failed: %v", err)
	}

	log.Printf("🚀 EC2 Instance Manager running at http://%s", app.cfg.Addr())
	log.Printf("📄 Dashboard:   http://%s/", app.cfg.Addr())
	log.Printf("🖥  EC2 Manager: http://%s/ec2", app.cfg.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Printf("[INFO] Received signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Shutdown errors: %v", err)
		os.Exit(1)
	}

	log.Println("[INFO] ✓ Clean shutdown completed")
}
