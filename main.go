package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/cliparse"
	"github.com/danielhkuo/meai-survey/db"
	"github.com/danielhkuo/meai-survey/middleware"
	"github.com/danielhkuo/meai-survey/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load question catalog
	cat, err := catalog.FromPath(cfg.CatalogPath)
	if err != nil {
		slog.Error("catalog load failed", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog ready", "title", cat.Title(), "questions", cat.Len())

	// Open submission store (unavailable storage does not stop startup)
	st, closeStore, err := db.OpenStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Create router
	mux := router.NewRouter(st, cat, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "strict", cfg.StrictValidation, "hash_ips", cfg.HashIPs)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
