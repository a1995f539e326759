// Package public serves the storefront and customer-facing API.
package public

import "github.com/Fid-Arch/Jewellery-Store-sub001/internal/provider"

// Handler is the entry point for storefront and customer endpoints.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
