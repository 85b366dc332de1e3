package api

import (
	"time"

	"github.com/cyra-health/cyra/internal/assistant"
	"github.com/cyra-health/cyra/internal/cycle"
	"github.com/cyra-health/cyra/internal/db"
	"github.com/cyra-health/cyra/internal/identity"
	"github.com/cyra-health/cyra/internal/scoring"
	"github.com/cyra-health/cyra/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	tracker   *services.TrackerService
	verifier  identity.Verifier
	roles     *identity.RoleCache
	scoring   *scoring.Client
	assistant *assistant.Client
	location  *time.Location
}

// NewHandler wires the full dependency graph over an open database. The
// scoring and assistant clients may be nil; the matching features degrade
// gracefully.
func NewHandler(database *gorm.DB, verifier identity.Verifier, roles *identity.RoleCache, scoringClient *scoring.Client, assistantClient *assistant.Client, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}

	repositories := db.NewRepositories(database)
	tracker := services.NewTrackerService(repositories.Records, repositories.Settings, cycle.DefaultConfig(), location)

	return &Handler{
		tracker:   tracker,
		verifier:  verifier,
		roles:     roles,
		scoring:   scoringClient,
		assistant: assistantClient,
		location:  location,
	}
}

// Tracker exposes the tracker service for wiring the reminder dispatcher.
func (handler *Handler) Tracker() *services.TrackerService {
	return handler.tracker
}
