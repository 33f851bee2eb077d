package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/JN-EPHEC/what2do-backend/internal/api"
	"github.com/JN-EPHEC/what2do-backend/internal/auth"
	"github.com/JN-EPHEC/what2do-backend/internal/config"
	"github.com/JN-EPHEC/what2do-backend/internal/service"
	"github.com/JN-EPHEC/what2do-backend/internal/storage/sqlite"
	"github.com/JN-EPHEC/what2do-backend/pkg/logging"
)

// tokenTTL bounds locally generated tokens; production tokens come from the
// hosted identity provider with their own expiry.
const tokenTTL = 24 * time.Hour

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Logging.Level != "" {
		logging.SetupWithLevel(logging.ParseLevel(cfg.Logging.Level))
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	var jwtManager *auth.JWTManager
	if cfg.Auth.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.Auth.JWTSecret, tokenTTL)
	} else {
		slog.Warn("JWT secret not set, mutating routes are unauthenticated")
	}

	recommender := service.NewRecommender(store)
	handler := api.NewRouter(store, recommender, jwtManager)

	// Wrap with h2c so HTTP/2 works without TLS behind the ingress proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := cfg.Server.Addr()
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
