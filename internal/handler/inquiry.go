package handler

import (
	"log/slog"
	"net/http"

	"github.com/homeline/homeline-go/internal/middleware"
	"github.com/homeline/homeline-go/internal/model"
	"github.com/homeline/homeline-go/internal/service"
)

// InquiryHandler handles HTTP requests for buyer inquiries.
type InquiryHandler struct {
	service  *service.InquiryService
	listings *service.ListingService
	log      *slog.Logger
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(svc *service.InquiryService, listings *service.ListingService, log *slog.Logger) *InquiryHandler {
	return &InquiryHandler{service: svc, listings: listings, log: log}
}

// HandleCreate handles POST /api/v1/listings/{id}/inquiries requests.
func (h *InquiryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	listingID, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	var req model.InquiryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.CreateInquiry(r.Context(), user.ID, listingID, req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/v1/listings/{id}/inquiries requests.
func (h *InquiryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	listingID, ok := ensureOwner(w, r, h.listings, h.log)
	if !ok {
		return
	}

	inquiries, err := h.service.ListInquiries(r.Context(), listingID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, inquiries)
}
