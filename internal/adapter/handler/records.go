package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/openclaw/interaction-bridge/internal/domain/logger"
	"github.com/openclaw/interaction-bridge/internal/domain/repository"
)

// RecordsHandler exposes the interaction audit trail.
type RecordsHandler struct {
	records repository.InteractionRecordRepository
	logger  logger.Logger
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(records repository.InteractionRecordRepository, log logger.Logger) *RecordsHandler {
	if log == nil {
		log = logger.Nop{}
	}
	return &RecordsHandler{
		records: records,
		logger:  log,
	}
}

// ServeHTTP handles GET /api/interactions/recent?limit=N
func (h *RecordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			http.Error(w, "limit must be an integer between 1 and 500", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.records.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("listing recent interactions failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"interactions": records,
		"count":        len(records),
	})
}
