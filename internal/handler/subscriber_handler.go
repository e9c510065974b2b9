// internal/handler/subscriber_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/unclebandit/mailpulse-backend/internal/model"
	"github.com/unclebandit/mailpulse-backend/internal/repository"
)

// recentSubscriberLimit caps the GET listing.
const recentSubscriberLimit = 50

// SubscriberHandler holds the dependencies for subscriber HTTP handlers
type SubscriberHandler struct {
	Repo repository.SubscriberRepositoryInterface
}

// CreateSubscriber upserts a subscriber keyed on email. Repeated posts
// with the same email update the existing record.
func (h *SubscriberHandler) CreateSubscriber(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Email == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Email is required"})
		return
	}

	sub := &model.Subscriber{
		Email: payload.Email,
		Name:  payload.Name,
	}
	if err := h.Repo.UpsertByEmail(r.Context(), sub); err != nil {
		http.Error(w, "failed to save subscriber: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Subscriber added/updated",
		"id":      strconv.Itoa(sub.ID),
	})
}

// ListSubscribers returns the latest subscribers by join time descending.
func (h *SubscriberHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Repo.ListRecent(r.Context(), recentSubscriberLimit)
	if err != nil {
		http.Error(w, "failed to fetch subscribers: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subs)
}
