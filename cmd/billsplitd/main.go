package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"billsplit/internal/api"
	"billsplit/internal/auth"
	"billsplit/internal/config"
	"billsplit/internal/service"
	"billsplit/internal/storage/sqlite"
	"billsplit/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if err := service.EnsureAdminUser(context.Background(), store, cfg.AdminPassword); err != nil {
		slog.Error("Failed to seed admin user", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	server := api.NewServer(
		service.NewAuthService(store, jwtManager, slog.Default()),
		service.NewUserService(store),
		service.NewBillService(store),
		jwtManager,
	)

	// Wrap with h2c so HTTP/2 works without TLS behind a local proxy.
	handler := h2c.NewHandler(server.Router(), &http2.Server{})

	slog.Info("Server starting", "address", cfg.RunAddr)
	if err := http.ListenAndServe(cfg.RunAddr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
