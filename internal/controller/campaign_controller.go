// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/mailpulse-backend/internal/errors"
	"github.com/unclebandit/mailpulse-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name         string  `json:"name"`
		Subject      string  `json:"subject"`
		BodyHTML     string  `json:"body_html"`
		ScheduleTime *string `json:"schedule_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if body.Name == "" || body.Subject == "" || body.BodyHTML == "" {
		writeJSONError(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	var scheduleTime time.Time
	if body.ScheduleTime != nil && *body.ScheduleTime != "" {
		t, err := time.Parse(time.RFC3339, *body.ScheduleTime)
		if err != nil {
			writeJSONError(w, "Invalid schedule_time format. Use ISO 8601.", http.StatusBadRequest)
			return
		}
		scheduleTime = t
	}

	campaign, err := c.CampaignService.CreateCampaign(r.Context(), body.Name, body.Subject, body.BodyHTML, scheduleTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := c.CampaignService.ListCampaigns(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaigns)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeJSONError(w, "Invalid campaign ID format.", http.StatusBadRequest)
		return
	}

	if err := c.CampaignService.DeleteCampaign(r.Context(), id); err != nil {
		var notFound *appErrors.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			writeJSONError(w, "Campaign not found or already completed.", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Campaign " + idStr + " deleted successfully.",
	})
}

func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
