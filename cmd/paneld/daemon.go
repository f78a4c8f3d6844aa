package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/paneld/internal/config"
	"github.com/1broseidon/paneld/internal/daemon"
	"github.com/1broseidon/paneld/internal/host"
	"github.com/1broseidon/paneld/internal/ipc"
	"github.com/1broseidon/paneld/internal/oplog"
	"github.com/1broseidon/paneld/internal/registry"
	"github.com/1broseidon/paneld/internal/store"
)

// panelOptions converts configured panel defaults to host options.
func panelOptions(cfg *config.Config) host.Options {
	opts := host.DefaultOptions()
	if cfg.Panel.Title != "" {
		opts.Title = cfg.Panel.Title
	}
	opts.X = cfg.Panel.X
	opts.Y = cfg.Panel.Y
	if cfg.Panel.Width > 0 {
		opts.Width = cfg.Panel.Width
	}
	if cfg.Panel.Height > 0 {
		opts.Height = cfg.Panel.Height
	}
	opts.Resizable = config.BoolOr(cfg.Panel.Resizable, opts.Resizable)
	opts.Decorated = config.BoolOr(cfg.Panel.Decorated, opts.Decorated)
	opts.AlwaysOnTop = config.BoolOr(cfg.Panel.AlwaysOnTop, opts.AlwaysOnTop)
	opts.SkipTaskbar = config.BoolOr(cfg.Panel.SkipTaskbar, opts.SkipTaskbar)
	return opts
}

func newActionLogger(cfg *config.Config) (*oplog.Logger, error) {
	return oplog.New(oplog.Config{
		Enabled:   cfg.Logging.Enabled,
		Level:     oplog.ParseLevel(cfg.Logging.Level),
		FilePath:  cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	opts := panelOptions(cfg)
	log.Printf("Configuration loaded (panel defaults: %dx%d at (%d, %d))",
		opts.Width, opts.Height, opts.X, opts.Y)

	// Connect to display server
	hst, err := host.NewX11Host(cfg.Display, cfg.XAuthority)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	if d, ok := hst.(interface{ Disconnect() }); ok {
		defer d.Disconnect()
	}

	log.Println("paneld daemon started successfully")

	svc := registry.NewServiceWithOptions(hst, opts)

	actions, err := newActionLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize action log: %v", err)
	}
	defer actions.Close()

	layoutsPath, err := config.LayoutsPath()
	if err != nil {
		log.Fatalf("Failed to resolve layouts path: %v", err)
	}
	layouts := store.New(layoutsPath)

	// Create config reload channel
	reloadChan := make(chan struct{}, 1)

	// Start IPC server
	ipcServer, err := ipc.NewServer(svc, hst, layouts, actions, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	// Setup reconciler
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	daemonLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	reconcilerCtx, reconcilerCancel := context.WithCancel(context.Background())
	defer reconcilerCancel()

	if cfg.ReconcilerEnabled() {
		reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: time.Duration(cfg.Reconciler.IntervalSeconds) * time.Second,
			Logger:   daemonLogger,
		}, svc, hst, actions)
		go reconciler.Run(reconcilerCtx)
	} else {
		daemonLogger.Info("reconciler disabled by config")
	}

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	reloadConfig := func() {
		newCfg, err := config.Load()
		if err != nil {
			log.Printf("Config reload failed: %v", err)
			return
		}
		cfg = newCfg
		svc.SetDefaults(panelOptions(newCfg))
		log.Println("Config reloaded successfully")
	}

	// Handle signals and config reloads
	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					reloadConfig()

				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down paneld daemon...")
					reconcilerCancel()
					ipcServer.Stop()
					actions.Close()
					os.Exit(0)
				}

			case <-reloadChan:
				reloadConfig()
			}
		}
	}()

	// Block on the X event loop
	log.Println("Entering event loop...")
	if el, ok := hst.(interface{ EventLoop() }); ok {
		el.EventLoop()
	} else {
		select {}
	}
}
