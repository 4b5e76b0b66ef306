package public

import (
	"strings"

	"github.com/bcexpress/tracking-api/internal/http/response"
	"github.com/bcexpress/tracking-api/internal/queue"
	"github.com/bcexpress/tracking-api/internal/service"

	"github.com/gin-gonic/gin"
)

// WhatsAppWebhookRequest is the WAHA event envelope.
type WhatsAppWebhookRequest struct {
	Event   string `json:"event"`
	Session string `json:"session"`
	Payload struct {
		ID     string `json:"id"`
		From   string `json:"from"`
		FromMe bool   `json:"fromMe"`
		Body   string `json:"body"`
	} `json:"payload"`
}

// WhatsAppWebhook receives gateway events and answers inbound direct
// messages with the automated reply. The gateway retries on non-200, so
// every outcome, including skipped events, returns success.
func (h *Handler) WhatsAppWebhook(c *gin.Context) {
	var req WhatsAppWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Success(c, gin.H{"handled": false})
		return
	}

	if req.Event != "message" {
		response.Success(c, gin.H{"handled": false})
		return
	}
	sender := strings.TrimSpace(req.Payload.From)
	if sender == "" || req.Payload.FromMe || strings.TrimSpace(req.Payload.Body) == "" {
		response.Success(c, gin.H{"handled": false})
		return
	}
	// Group chatter never gets an auto reply.
	if strings.HasSuffix(sender, "@g.us") {
		response.Success(c, gin.H{"handled": false})
		return
	}
	if h.Config == nil || !h.Config.WhatsApp.AutoReplyEnabled || h.WhatsAppService == nil || !h.WhatsAppService.Enabled() {
		response.Success(c, gin.H{"handled": false})
		return
	}

	payload := queue.WhatsAppTextPayload{
		Target: sender,
		Text:   service.AutoReplyText(),
	}
	if h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueWhatsAppText(payload); err != nil {
			requestLog(c).Warnw("whatsapp_auto_reply_enqueue_failed", "sender", sender, "error", err)
		}
		response.Success(c, gin.H{"handled": true})
		return
	}

	if err := h.WhatsAppService.SendText(c.Request.Context(), sender, payload.Text); err != nil {
		requestLog(c).Warnw("whatsapp_auto_reply_send_failed", "sender", sender, "error", err)
	}
	response.Success(c, gin.H{"handled": true})
}
