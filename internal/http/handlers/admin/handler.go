package admin

import "github.com/bcexpress/tracking-api/internal/provider"

// Handler serves the staff-facing API group: login, booking
// verification, and shipment audit.
type Handler struct {
	*provider.Container
}

// New builds the staff handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
