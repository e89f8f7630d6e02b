// internal/handler/batch_campaign_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/wabablast-backend/internal/errors"
	"github.com/unclebandit/wabablast-backend/internal/service"
)

// BatchCampaignHandler holds the dependencies for batch-campaign HTTP handlers
type BatchCampaignHandler struct {
	Service *service.BatchCampaignService
}

// GetBatchCampaignHandlerWithStats returns one batch campaign with its
// sub-campaigns and per-status job stats.
func (h *BatchCampaignHandler) GetBatchCampaignHandlerWithStats(w http.ResponseWriter, r *http.Request) {
	orgID := r.Header.Get("X-Organization-ID")
	if orgID == "" {
		http.Error(w, "missing X-Organization-ID header", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "invalid batch campaign id", http.StatusBadRequest)
		return
	}

	details, err := h.Service.GetBatchCampaignDetails(r.Context(), orgID, id)
	if err != nil {
		var notFound *appErrors.ErrBatchCampaignNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("❌ Error fetching batch campaign:", err)
		http.Error(w, "failed to fetch batch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}
