// Package admin serves the back-office API.
package admin

import "github.com/Fid-Arch/Jewellery-Store-sub001/internal/provider"

// Handler is the entry point for admin endpoints.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
