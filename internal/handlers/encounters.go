package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/initiative-tracker/internal/storage"
	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type EncounterHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewEncounterHandler(logger *slog.Logger, storage storage.Storage) *EncounterHandler {
	return &EncounterHandler{
		logger:  logger,
		storage: storage,
	}
}

// ServeHTTP handles HTTP requests for saved encounters
// Routes:
// GET /v1/encounters            - List saved encounters
// POST /v1/encounters           - Save an encounter under its name
// GET /v1/encounters/{slug}     - Read a saved encounter
// DELETE /v1/encounters/{slug}  - Delete a saved encounter
func (h *EncounterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Parse the path to extract the slug for GET/DELETE operations
	path := strings.TrimPrefix(r.URL.Path, "/v1/encounters")
	var slug string
	if path != "" && path != "/" {
		slug = encounter.Slug(strings.Trim(path, "/"))
	}

	switch r.Method {
	case http.MethodGet:
		if slug == "" {
			h.handleList(w, r)
			return
		}
		h.handleRead(w, r, slug)

	case http.MethodPost:
		h.handleSave(w, r)

	case http.MethodDelete:
		if slug == "" {
			h.logger.Warn("DELETE request without encounter slug")
			w.WriteHeader(http.StatusBadRequest)
			response := ErrorResponse{
				Error: "Encounter name is required for DELETE requests",
			}
			if err := json.NewEncoder(w).Encode(response); err != nil {
				h.logger.Error("Failed to encode error response", "error", err)
			}
			return
		}
		h.handleDelete(w, r, slug)

	default:
		h.logger.Warn("Method not allowed for encounters endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		response := ErrorResponse{
			Error: "Method not allowed. Supported methods: GET, POST, DELETE",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
	}
}

func (h *EncounterHandler) handleList(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.storage.ListEncounters(r.Context())
	if err != nil {
		h.logger.Error("Failed to list encounters", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to list encounters",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snapshots); err != nil {
		h.logger.Error("Failed to encode encounter list response", "error", err)
	}
}

// handleSave stores the posted encounter under the slug of its name.
// The body is the snapshot shape; any client-sent id or savedAt is
// replaced by server-assigned values. Decoding shares the snapshot
// codec, so malformed numerics coerce instead of failing the save.
func (h *EncounterHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var snap encounter.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: "Invalid JSON in request body",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	snap.Name = strings.TrimSpace(snap.Name)
	if err := encounter.ValidateName(snap.Name); err != nil {
		h.logger.Warn("Rejected encounter name", "name", snap.Name)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: err.Error(),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	snap = snap.Sanitized()
	snap.ID = uuid.NewString()
	snap.SavedAt = time.Now().UTC()

	if err := h.storage.SaveEncounter(r.Context(), snap); err != nil {
		h.logger.Error("Failed to save encounter", "error", err, "name", snap.Name)
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to save encounter",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	h.logger.Debug("Encounter saved", "name", snap.Name, "id", snap.ID)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		h.logger.Error("Failed to encode encounter response", "error", err)
	}
}

func (h *EncounterHandler) handleRead(w http.ResponseWriter, r *http.Request, slug string) {
	snap, err := h.storage.LoadEncounter(r.Context(), slug)
	if err != nil {
		h.logger.Error("Failed to load encounter", "error", err, "slug", slug)
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to load encounter",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if snap == nil {
		h.logger.Warn("Encounter not found", "slug", slug)
		w.WriteHeader(http.StatusNotFound)
		response := ErrorResponse{
			Error: "Encounter not found",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		h.logger.Error("Failed to encode encounter response", "error", err)
	}
}

func (h *EncounterHandler) handleDelete(w http.ResponseWriter, r *http.Request, slug string) {
	if err := h.storage.DeleteEncounter(r.Context(), slug); err != nil {
		h.logger.Error("Failed to delete encounter", "error", err, "slug", slug)
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to delete encounter",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}
	h.logger.Debug("Encounter deleted", "slug", slug)
	w.WriteHeader(http.StatusNoContent)
}
