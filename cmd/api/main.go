package main

import (
	"anonforum/cmd/app"
	"anonforum/internal/config"
	handlers "anonforum/internal/handler"
	"anonforum/internal/middleware"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY non défini")
	}

	trusted, err := middleware.ParseTrustedProxies(cfg.Protection.TrustedProxies)
	if err != nil {
		log.Fatalf("Configuration des proxys invalide : %v", err)
	}

	application := app.New(cfg)
	defer application.Close()

	handler := handlers.NewHandlers(application.Services, application.DB, cfg)

	// CORS first so preflight requests never hit auth or rate limits
	handlerChain := middleware.Chain(
		newRouter(handler),
		middleware.CORSMiddleware(cfg.AppURL),
		middleware.LoggingMiddleware,
		middleware.AuthMiddleware(application.Services.Auth),
		middleware.ProtectionMiddleware(application.Shield, trusted),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Serveur démarré sur %s (base : %s)", addr, cfg.DB.DbNAME)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erreur de démarrage du serveur : %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Arrêt du serveur")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Arrêt forcé : %v", err)
	}
}
