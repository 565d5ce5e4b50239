package rest

import (
	"net/http"
	"strconv"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
	usecases_port "home-finder-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// PropertyHandler serves the public property catalog endpoints.
type PropertyHandler struct {
	findUC     usecases_port.FindPropertiesUseCasePort
	detailsUC  usecases_port.GetPropertyDetailsUseCasePort
	featuredUC usecases_port.GetFeaturedPropertiesUseCasePort
}

func NewPropertyHandler(
	findUC usecases_port.FindPropertiesUseCasePort,
	detailsUC usecases_port.GetPropertyDetailsUseCasePort,
	featuredUC usecases_port.GetFeaturedPropertiesUseCasePort,
) *PropertyHandler {
	return &PropertyHandler{
		findUC:     findUC,
		detailsUC:  detailsUC,
		featuredUC: featuredUC,
	}
}

func parsePropertyFilters(r *http.Request) (domain.PropertyFilters, error) {
	var filters domain.PropertyFilters
	var err error

	if filters.MinPrice, err = queryFloat(r, "minPrice"); err != nil {
		return filters, err
	}
	if filters.MaxPrice, err = queryFloat(r, "maxPrice"); err != nil {
		return filters, err
	}
	if filters.Bedrooms, err = queryInt(r, "bedrooms"); err != nil {
		return filters, err
	}
	if filters.Bathrooms, err = queryInt(r, "bathrooms"); err != nil {
		return filters, err
	}

	filters.Type = r.URL.Query().Get("type")
	filters.Furnishing = r.URL.Query().Get("furnishing")
	filters.Availability = r.URL.Query().Get("availability")
	filters.SortBy = r.URL.Query().Get("sortBy")
	filters.SortOrder = r.URL.Query().Get("sortOrder")
	return filters, nil
}

// FindProperties handles GET /api/v1/properties.
func (h *PropertyHandler) FindProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindProperties"})

	filters, err := parsePropertyFilters(r)
	if err != nil {
		logger.Warn("Invalid filter parameters.", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid filter parameters")
		return
	}

	limit, offset, err := GetLimitAndOffset(r)
	if err != nil {
		logger.Warn("Invalid pagination parameters.", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	logger.Info("Processing property search request", nil)

	result, err := h.findUC.Execute(r.Context(), filters, limit, offset)
	if err != nil {
		logger.Error("Find properties use case failed", err, nil)
		if isInvalidInput(err) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, "Failed to search properties")
		return
	}

	response := PaginatedPropertiesResponse{
		Properties: toPropertyResponses(result.Properties),
		Total:      result.Total,
		HasMore:    result.HasMore,
		Degraded:   result.Degraded,
	}

	logger.Info("Property search served", port.Fields{
		"total_found":   result.Total,
		"items_on_page": len(result.Properties),
		"degraded":      result.Degraded,
	})
	RespondWithJSON(w, http.StatusOK, response)
}

// GetFeaturedProperties handles GET /api/v1/properties/featured.
func (h *PropertyHandler) GetFeaturedProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFeaturedProperties"})

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
	}

	properties, err := h.featuredUC.Execute(r.Context(), limit)
	if err != nil {
		logger.Error("Get featured properties use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get featured properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponses(properties))
}

// GetPropertyDetails handles GET /api/v1/properties/{propertyID}.
func (h *PropertyHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPropertyDetails"})

	idStr := chi.URLParam(r, "propertyID")
	propertyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.Warn("Invalid property id in URL.", port.Fields{"provided_id": idStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	property, err := h.detailsUC.Execute(r.Context(), propertyID)
	if err != nil {
		logger.Error("Get property details use case failed", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to get property details"))
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property))
}
