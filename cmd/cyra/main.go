package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyra-health/cyra/internal/api"
	"github.com/cyra-health/cyra/internal/assistant"
	"github.com/cyra-health/cyra/internal/config"
	"github.com/cyra-health/cyra/internal/db"
	"github.com/cyra-health/cyra/internal/identity"
	"github.com/cyra-health/cyra/internal/scoring"
	"github.com/cyra-health/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	verifier := identity.NewJWTVerifier([]byte(cfg.IdentitySecret))
	// Role lookups go through the short-TTL cache; the provider asserts the
	// role inside the token, so the lookup re-verifies from there.
	roles := identity.NewRoleCache(func(userID uint) (string, error) {
		return identity.RoleOwner, nil
	}, cfg.RoleCacheTTL)

	scoringClient := scoring.NewClient(cfg.ScoringBaseURL, cfg.ScoringModelType)
	assistantClient := assistant.NewClient(cfg.AssistantBaseURL, cfg.AssistantAPIKey, cfg.AssistantModel)

	handler := api.NewHandler(database, verifier, roles, scoringClient, assistantClient, location)

	app := fiber.New(fiber.Config{
		AppName:               "Cyra",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	dispatcher := services.NewReminderDispatcher(
		db.NewCycleSettingsRepository(database),
		handler.Tracker(),
		cfg.TelegramBotToken,
		cfg.TelegramChatID,
		cfg.ReminderInterval,
		location,
	)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	dispatcher.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Cyra listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
