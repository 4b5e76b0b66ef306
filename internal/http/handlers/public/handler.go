package public

import "github.com/bcexpress/tracking-api/internal/provider"

// Handler serves the public API group: tracking, login captcha, and the
// WhatsApp webhook.
type Handler struct {
	*provider.Container
}

// New builds the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
