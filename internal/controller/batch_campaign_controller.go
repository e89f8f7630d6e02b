// internal/controller/batch_campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	appErrors "github.com/unclebandit/wabablast-backend/internal/errors"
	"github.com/unclebandit/wabablast-backend/internal/service"
)

type BatchCampaignController struct {
	BatchCampaignService *service.BatchCampaignService
}

// CreateBatchCampaign handles POST /campaigns/batch.
func (c *BatchCampaignController) CreateBatchCampaign(w http.ResponseWriter, r *http.Request) {
	orgID := organizationID(r)
	if orgID == "" {
		writeError(w, http.StatusBadRequest, "missing X-Organization-ID header")
		return
	}

	var body struct {
		Name       string   `json:"name"`
		Contacts   []string `json:"contacts"`
		Message    string   `json:"message"`
		TemplateID *string  `json:"template_id"`
		MediaID    *string  `json:"media_id"`
		ScheduleAt *string  `json:"schedule_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "campaign name is required")
		return
	}
	if len(body.Contacts) == 0 {
		writeError(w, http.StatusBadRequest, "at least one contact is required")
		return
	}
	if body.Message == "" && (body.TemplateID == nil || *body.TemplateID == "") {
		writeError(w, http.StatusBadRequest, "message or template_id is required")
		return
	}

	input := service.CreateBatchCampaignInput{
		Name:        body.Name,
		ContactIDs:  body.Contacts,
		Message:     body.Message,
		TemplateRef: body.TemplateID,
		MediaID:     body.MediaID,
	}
	if body.ScheduleAt != nil {
		t, err := time.Parse(time.RFC3339, *body.ScheduleAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid schedule_at, expected RFC3339")
			return
		}
		input.ScheduleAt = &t
	}

	result, err := c.BatchCampaignService.CreateBatchCampaign(r.Context(), orgID, input)
	if err != nil {
		var noEligible *appErrors.ErrNoEligibleContacts
		var partial *appErrors.ErrPartialEligibility
		switch {
		case errors.As(err, &noEligible), errors.As(err, &partial):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create batch campaign")
		}
		return
	}

	writeSuccess(w, result)
}

// ListBatchCampaigns handles GET /campaigns/batch with pagination.
func (c *BatchCampaignController) ListBatchCampaigns(w http.ResponseWriter, r *http.Request) {
	orgID := organizationID(r)
	if orgID == "" {
		writeError(w, http.StatusBadRequest, "missing X-Organization-ID header")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	batches, pagination, err := c.BatchCampaignService.ListBatchCampaigns(r.Context(), orgID, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch batch campaigns")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"batch_campaigns": batches,
		"pagination":      pagination,
	})
}
