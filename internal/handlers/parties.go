package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/initiative-tracker/internal/storage"
	"github.com/jwebster45206/initiative-tracker/pkg/party"
)

type PartyHandler struct {
	log     *slog.Logger
	storage storage.Storage
}

func NewPartyHandler(log *slog.Logger, storage storage.Storage) *PartyHandler {
	return &PartyHandler{
		log:     log,
		storage: storage,
	}
}

func (h *PartyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if r.URL.Path == "/v1/pcs" || r.URL.Path == "/v1/pcs/" {
			h.ListPCs(w, r)
		} else {
			h.handleGet(w, r)
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListPCs lists all available PC sheets
func (h *PartyHandler) ListPCs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.storage.ListPartyMembers(r.Context())
	if err != nil {
		h.log.Error("Failed to list PCs", "error", err)
		http.Error(w, "Failed to list PCs", http.StatusInternalServerError)
		return
	}

	// Initialize as empty slice instead of nil
	pcList := make([]map[string]interface{}, 0)
	for _, id := range ids {
		spec, err := h.storage.GetPartyMember(r.Context(), id)
		if err != nil || spec == nil {
			h.log.Warn("Failed to load PC sheet", "error", err, "id", id)
			continue
		}

		// Summary object with just the key fields
		pcList = append(pcList, map[string]interface{}{
			"id":    spec.ID,
			"name":  spec.Name,
			"class": spec.Class,
			"race":  spec.Race,
			"level": spec.Level,
		})
	}

	data, err := json.Marshal(pcList)
	if err != nil {
		h.log.Error("Failed to marshal PC list", "error", err)
		http.Error(w, "Failed to process PC list", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Error("Failed to write PC list response", "error", err)
	}
}

func (h *PartyHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/pcs/")
	id := strings.TrimSpace(path)

	if id == "" || id == "/" {
		http.Error(w, "PC ID is required in URL path (e.g., /v1/pcs/brynn)", http.StatusBadRequest)
		return
	}

	// Security: prevent directory traversal
	if strings.Contains(id, "..") || strings.Contains(id, "/") {
		http.Error(w, "Invalid PC ID", http.StatusBadRequest)
		return
	}

	spec, err := h.storage.GetPartyMember(r.Context(), id)
	if err != nil {
		h.log.Error("Failed to load PC sheet", "error", err, "id", id)
		http.Error(w, "Failed to load PC", http.StatusInternalServerError)
		return
	}
	if spec == nil {
		http.Error(w, "PC not found", http.StatusNotFound)
		return
	}

	// Building the member validates the sheet before it is served
	if _, err := party.NewMember(spec); err != nil {
		h.log.Error("PC sheet failed validation", "error", err, "id", id)
		http.Error(w, "PC sheet is invalid", http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(spec)
	if err != nil {
		h.log.Error("Failed to marshal PC", "error", err, "id", id)
		http.Error(w, "Failed to process PC", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Error("Failed to write response", "error", err, "id", id)
	}
}
