package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
	usecases_port "home-finder-service/internal/core/port/usecases_port"
)

// WebhookHandler receives identity provider events and mirrors them
// into the local user store.
type WebhookHandler struct {
	verifier *WebhookVerifier
	syncUC   usecases_port.SyncIdentityUseCasePort
}

func NewWebhookHandler(verifier *WebhookVerifier, syncUC usecases_port.SyncIdentityUseCasePort) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, syncUC: syncUC}
}

// HandleIdentityEvent processes POST /api/v1/webhooks/identity.
func (h *WebhookHandler) HandleIdentityEvent(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleIdentityEvent"})

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Warn("Failed to read webhook body.", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	err = h.verifier.Verify(
		r.Header.Get("svix-id"),
		r.Header.Get("svix-timestamp"),
		r.Header.Get("svix-signature"),
		body,
	)
	if err != nil {
		// An unverified payload is never processed.
		logger.Warn("Webhook signature verification failed.", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Webhook verification failed")
		return
	}

	var payload identityWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Warn("Failed to decode webhook payload.", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"event_type": payload.Type,
		"clerk_id":   payload.Data.ID,
	})
	handlerLogger.Info("Processing identity webhook event", nil)

	event := domain.IdentityEvent{
		Type:      payload.Type,
		ClerkID:   payload.Data.ID,
		Email:     payload.primaryEmail(),
		FirstName: payload.Data.FirstName,
		LastName:  payload.Data.LastName,
	}

	if err := h.syncUC.Execute(r.Context(), event); err != nil {
		handlerLogger.Error("Sync identity use case failed", err, nil)
		status := http.StatusInternalServerError
		if isInvalidInput(err) {
			status = http.StatusBadRequest
		}
		WriteJSONError(w, status, "Failed to process identity event")
		return
	}

	handlerLogger.Info("Identity webhook event processed", nil)
	RespondWithJSON(w, http.StatusOK, map[string]string{"received": payload.Type})
}
