package admin

import (
	"strings"

	"github.com/bcexpress/tracking-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetShipmentHistory returns the ordered status trail for an AWB.
func (h *Handler) GetShipmentHistory(c *gin.Context) {
	awbNumber := strings.TrimSpace(c.Param("awb"))
	if awbNumber == "" {
		respondError(c, response.CodeBadRequest, "error.awb_required", nil)
		return
	}

	history, err := h.ShipmentService.History(c.Request.Context(), awbNumber)
	if err != nil {
		respondError(c, response.CodeInternal, "error.history_fetch_failed", err)
		return
	}

	response.Success(c, history)
}
