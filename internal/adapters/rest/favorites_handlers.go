package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/port"
	usecases_port "home-finder-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// FavoritesHandler serves the authenticated favorites endpoints. The
// caller's identity comes from the token subject, never from the URL.
type FavoritesHandler struct {
	addUC      usecases_port.AddToFavoritesUseCasePort
	removeUC   usecases_port.RemoveFromFavoritesUseCasePort
	statusUC   usecases_port.IsFavoritedUseCasePort
	getIdsUC   usecases_port.GetUserFavoriteIDsUseCasePort
	getItemsUC usecases_port.GetUserFavoritesUseCasePort
}

func NewFavoritesHandler(
	addUC usecases_port.AddToFavoritesUseCasePort,
	removeUC usecases_port.RemoveFromFavoritesUseCasePort,
	statusUC usecases_port.IsFavoritedUseCasePort,
	getIdsUC usecases_port.GetUserFavoriteIDsUseCasePort,
	getItemsUC usecases_port.GetUserFavoritesUseCasePort,
) *FavoritesHandler {
	return &FavoritesHandler{
		addUC:      addUC,
		removeUC:   removeUC,
		statusUC:   statusUC,
		getIdsUC:   getIdsUC,
		getItemsUC: getItemsUC,
	}
}

func (h *FavoritesHandler) callerClerkID(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (string, bool) {
	clerkID, ok := ClerkIDFromContext(r.Context())
	if !ok || clerkID == "" {
		logger.Error("Missing clerk id in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Missing caller identity")
		return "", false
	}
	return clerkID, true
}

// GetUserFavorites handles GET /api/v1/users/favorites.
func (h *FavoritesHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavorites"})

	clerkID, ok := h.callerClerkID(w, r, logger)
	if !ok {
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"clerk_id": clerkID})
	handlerLogger.Info("Processing request to get user favorites", nil)

	properties, err := h.getItemsUC.Execute(r.Context(), clerkID)
	if err != nil {
		handlerLogger.Error("Get user favorites use case failed", err, nil)
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to retrieve favorites"))
		return
	}

	handlerLogger.Info("Successfully retrieved user favorites", port.Fields{
		"favorites_count": len(properties),
	})
	RespondWithJSON(w, http.StatusOK, toPropertyResponses(properties))
}

// GetUserFavoriteIDs handles GET /api/v1/users/favorites/ids.
func (h *FavoritesHandler) GetUserFavoriteIDs(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavoriteIDs"})

	clerkID, ok := h.callerClerkID(w, r, logger)
	if !ok {
		return
	}

	ids, err := h.getIdsUC.Execute(r.Context(), clerkID)
	if err != nil {
		logger.Error("Get user favorite ids use case failed", err, port.Fields{"clerk_id": clerkID})
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to retrieve favorites"))
		return
	}

	RespondWithJSON(w, http.StatusOK, ids)
}

// GetFavoriteStatus handles GET /api/v1/users/favorites/status/{propertyID}.
func (h *FavoritesHandler) GetFavoriteStatus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFavoriteStatus"})

	clerkID, ok := h.callerClerkID(w, r, logger)
	if !ok {
		return
	}

	propertyID, err := propertyIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	favorited, err := h.statusUC.Execute(r.Context(), clerkID, propertyID)
	if err != nil {
		logger.Error("Favorite status use case failed", err, port.Fields{
			"clerk_id":    clerkID,
			"property_id": propertyID,
		})
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to check favorite status"))
		return
	}

	RespondWithJSON(w, http.StatusOK, FavoriteStatusResponse{
		PropertyID: propertyID,
		Favorited:  favorited,
	})
}

// AddToFavorites handles POST /api/v1/users/favorites.
func (h *FavoritesHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddToFavorites"})

	clerkID, ok := h.callerClerkID(w, r, logger)
	if !ok {
		return
	}

	var reqDTO AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for add favorite.", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if reqDTO.PropertyID <= 0 {
		logger.Warn("Invalid property id in request.", port.Fields{"provided_id": reqDTO.PropertyID})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"clerk_id":    clerkID,
		"property_id": reqDTO.PropertyID,
	})
	handlerLogger.Info("Processing request to add to favorites", nil)

	if err := h.addUC.Execute(r.Context(), clerkID, reqDTO.PropertyID); err != nil {
		handlerLogger.Error("Add to favorites use case failed", err, nil)
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to add to favorites"))
		return
	}

	handlerLogger.Info("Successfully added property to favorites", nil)
	RespondWithJSON(w, http.StatusCreated, FavoriteStatusResponse{
		PropertyID: reqDTO.PropertyID,
		Favorited:  true,
	})
}

// RemoveFromFavorites handles DELETE /api/v1/users/favorites/{propertyID}.
func (h *FavoritesHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveFromFavorites"})

	clerkID, ok := h.callerClerkID(w, r, logger)
	if !ok {
		return
	}

	propertyID, err := propertyIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"clerk_id":    clerkID,
		"property_id": propertyID,
	})
	handlerLogger.Info("Processing request to remove from favorites", nil)

	if err := h.removeUC.Execute(r.Context(), clerkID, propertyID); err != nil {
		handlerLogger.Error("Remove from favorites use case failed", err, nil)
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to remove from favorites"))
		return
	}

	handlerLogger.Info("Successfully removed property from favorites", nil)
	w.WriteHeader(http.StatusNoContent)
}

func propertyIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "propertyID"), 10, 64)
}
