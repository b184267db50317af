package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"thewire/internal/app"
	"thewire/internal/config"
	"thewire/internal/logger"
	"thewire/internal/metrics"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	a, err := app.New(ctx, cfg, os.Stdout)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		metrics.Global.SetError(err.Error())
		logger.Error("session failed", "error", err)
		os.Exit(1)
	}
}

func startMonitoringServer() {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
		})
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics.Global.GetStats())
	})

	logger.Info("monitoring server listening", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Error("monitoring server stopped", "error", err)
	}
}
