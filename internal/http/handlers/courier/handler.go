package courier

import "github.com/bcexpress/tracking-api/internal/provider"

// Handler serves the courier-facing API group: manual status updates,
// QR bulk scans, and proof-of-delivery uploads.
type Handler struct {
	*provider.Container
}

// New builds the courier handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
