package public

import (
	"errors"
	"strings"

	"github.com/bcexpress/tracking-api/internal/http/response"
	"github.com/bcexpress/tracking-api/internal/service"

	"github.com/gin-gonic/gin"
)

// TrackShipment returns a shipment and its ordered status trail.
func (h *Handler) TrackShipment(c *gin.Context) {
	awbNumber := strings.TrimSpace(c.Param("awb"))
	if awbNumber == "" {
		respondError(c, response.CodeBadRequest, "error.awb_required", nil)
		return
	}

	shipment, history, err := h.ShipmentService.Track(c.Request.Context(), awbNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShipmentNotFound):
			respondError(c, response.CodeNotFound, "error.shipment_not_found", nil)
		case errors.Is(err, service.ErrTimeout):
			respondError(c, response.CodeInternal, "error.timeout_retry", nil)
		default:
			respondError(c, response.CodeInternal, "error.tracking_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"shipment": shipment,
		"history":  history,
	})
}
