package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskdeck-api/internal/api/shared"
	"github.com/phrazzld/taskdeck-api/internal/service"
)

// SeedHandler provisions the default categories and priorities for a user.
type SeedHandler struct {
	seeder *service.DefaultsSeeder
	logger *slog.Logger
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seeder *service.DefaultsSeeder, logger *slog.Logger) *SeedHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SeedHandler")
	}

	return &SeedHandler{
		seeder: seeder,
		logger: logger.With(slog.String("component", "seed_handler")),
	}
}

// SeedDefaults handles POST /defaults requests. Seeding is idempotent: a
// user who already has categories or priorities is left untouched.
func (h *SeedHandler) SeedDefaults(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	if err := h.seeder.SeedUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to seed defaults")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
