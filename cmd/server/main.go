package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/gestion-scolaire/api-notes/internal/config"
	"github.com/gestion-scolaire/api-notes/internal/database"
	"github.com/gestion-scolaire/api-notes/internal/handler"
	"github.com/gestion-scolaire/api-notes/internal/queue"
	"github.com/gestion-scolaire/api-notes/internal/repository"
	"github.com/gestion-scolaire/api-notes/internal/router"
	"github.com/gestion-scolaire/api-notes/internal/service"
	"github.com/gestion-scolaire/api-notes/internal/token"
)

func main() {
	// A missing .env is fine in deployed environments where variables
	// come from the process manager.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := repository.NewUtilisateurRepo(db)
	classes := repository.NewClasseRepo(db)
	matieres := repository.NewMatiereRepo(db)
	notes := repository.NewNoteRepo(db)

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTLSecs)
	authSvc := service.NewAuthService(users, codec)
	gradeSvc := service.NewGradeService(users, classes, matieres, notes)

	// The consumer materializes audit events into the log file; it keeps
	// reconnecting on its own, so a broker outage never blocks startup.
	go func() {
		if err := queue.StartNoteConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Auth:      handler.NewAuthHandler(authSvc),
		Notes:     handler.NewNotesHandler(gradeSvc, queue.PublishNoteRecorded),
		Health:    handler.NewHealthHandler(db),
		Codec:     codec,
		RateLimit: config.LoadRateLimitConfig(),
		Redis:     config.NewRedisClient(),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
