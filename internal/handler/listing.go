package handler

import (
	"log/slog"
	"net/http"

	"github.com/homeline/homeline-go/internal/middleware"
	"github.com/homeline/homeline-go/internal/model"
	"github.com/homeline/homeline-go/internal/service"
)

// ListingHandler handles HTTP requests for listings.
type ListingHandler struct {
	service *service.ListingService
	log     *slog.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(svc *service.ListingService, log *slog.Logger) *ListingHandler {
	return &ListingHandler{service: svc, log: log}
}

// HandleList handles GET /api/v1/listings requests.
func (h *ListingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := service.BuildListingFilter(q.Get("city"), q.Get("minPrice"), q.Get("maxPrice"), q.Get("propertyType"))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	listings, err := h.service.ListListings(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, listings)
}

// HandleGet handles GET /api/v1/listings/{id} requests.
func (h *ListingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	listing, err := h.service.GetListing(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

// HandleCreate handles POST /api/v1/listings requests.
func (h *ListingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	listing, err := h.service.CreateListing(r.Context(), req, user.ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, listing)
}

// HandleUpdate handles PATCH /api/v1/listings/{id} requests.
func (h *ListingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := ensureOwner(w, r, h.service, h.log)
	if !ok {
		return
	}

	var req model.UpdateListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	listing, err := h.service.UpdateListing(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

// HandleDelete handles DELETE /api/v1/listings/{id} requests.
func (h *ListingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := ensureOwner(w, r, h.service, h.log)
	if !ok {
		return
	}

	if err := h.service.DeleteListing(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ensureOwner parses the listing id and checks that the authenticated
// realtor owns it. It writes the error response on failure.
func ensureOwner(w http.ResponseWriter, r *http.Request, listings *service.ListingService, log *slog.Logger) (int64, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return 0, false
	}

	id, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, log, err)
		return 0, false
	}

	if err := listings.EnsureOwner(r.Context(), id, user.ID); err != nil {
		writeServiceError(w, r, log, err)
		return 0, false
	}
	return id, true
}
