package courier

import (
	"errors"

	"github.com/bcexpress/tracking-api/internal/http/response"
	"github.com/bcexpress/tracking-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateStatusRequest is the manual courier update payload.
type UpdateStatusRequest struct {
	AWBNumber string   `json:"awb_number"`
	Status    string   `json:"status"`
	Location  string   `json:"location"`
	Notes     string   `json:"notes"`
	PhotoURL  *string  `json:"photo_url"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// UpdateStatus applies a manual shipment status update. The shipment is
// auto-created from manifest data when it does not exist yet.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shipment, err := h.ShipmentService.UpdateStatus(c.Request.Context(), service.UpdateStatusInput{
		AWBNumber: req.AWBNumber,
		Status:    req.Status,
		Location:  req.Location,
		Notes:     req.Notes,
		PhotoURL:  req.PhotoURL,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		UpdatedBy: getUsername(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsRequired):
			respondError(c, response.CodeBadRequest, "error.fields_required", nil)
		case errors.Is(err, service.ErrStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.status_invalid", nil)
		case errors.Is(err, service.ErrCoordinatesInvalid):
			respondError(c, response.CodeBadRequest, "error.coordinates_invalid", nil)
		case errors.Is(err, service.ErrTimeout):
			respondError(c, response.CodeInternal, "error.timeout_retry", nil)
		default:
			respondError(c, response.CodeInternal, "error.shipment_update_failed", err)
		}
		return
	}

	response.Success(c, shipment)
}

// ScanRequest is one QR bulk scan payload.
type ScanRequest struct {
	AWBNumber string `json:"awb_number" binding:"required"`
}

// Scan lands one scanned AWB on out_for_delivery assigned to the
// scanning courier.
func (h *Handler) Scan(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.ScanService.ProcessScan(c.Request.Context(), service.ScanInput{
		AWBNumber:   req.AWBNumber,
		CourierID:   userID,
		CourierName: getUsername(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsRequired):
			respondError(c, response.CodeBadRequest, "error.awb_required", nil)
		case errors.Is(err, service.ErrScanDebounced):
			respondError(c, response.CodeConflict, "error.scan_debounced", nil)
		case errors.Is(err, service.ErrScanConflict):
			respondError(c, response.CodeConflict, "error.scan_conflict", nil)
		case errors.Is(err, service.ErrTimeout):
			respondError(c, response.CodeInternal, "error.timeout_retry", nil)
		default:
			respondError(c, response.CodeInternal, "error.scan_failed", err)
		}
		return
	}

	response.Success(c, result)
}
