package http

import (
	"encoding/json"
	"net/http"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/office"
	"github.com/timegrid-hq/attendance-backend-go/internal/handler/http/response"
)

type OfficeHandler interface {
	GetActive(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type officeHandlerImpl struct {
	officeService office.Service
}

func NewOfficeHandler(officeService office.Service) OfficeHandler {
	return &officeHandlerImpl{officeService: officeService}
}

// GetActive implements OfficeHandler.
func (h *officeHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	loc, err := h.officeService.GetActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, office.LocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		RadiusMeters: loc.RadiusMeters,
		IsActive:     loc.IsActive,
	})
}

// Upsert implements OfficeHandler.
func (h *officeHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req office.UpsertLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.officeService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location saved", result)
}
