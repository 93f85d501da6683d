package app

import (
	"anonforum/internal/config"
	"anonforum/internal/database"
	"anonforum/internal/mail"
	"anonforum/internal/protection"
	"anonforum/internal/repository"
	"anonforum/internal/service"
	"anonforum/internal/storage"
	"context"
	"log"
	"time"
)

// App holds the long-lived dependencies shared by the binaries.
type App struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Shield   *protection.Shield
}

func New(cfg *config.Config) *App {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Impossible de se connecter à la base : %v", err)
	}

	// connection MinIO
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		db.CloseDB()
		log.Fatalf("Impossible d'initialiser MinIO : %v", err)
	}

	mailer := mail.NewSMTPSender(cfg.SMTP, cfg.AppURL)

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, mailer)

	return &App{
		DB:       db,
		Repo:     repo,
		Services: services,
		Shield:   protection.NewShield(cfg.Protection, nil),
	}
}

func (a *App) Close() {
	a.Shield.Close()
	if err := a.DB.CloseDB(); err != nil {
		log.Printf("Erreur à la fermeture de la base : %v", err)
	}
}
