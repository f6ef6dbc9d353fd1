package reporthttp

import (
	"github.com/go-chi/chi/v5"
)

// Routes registers report endpoints onto the router.
func (h *Handler) Routes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/reports", h.handleGetReport)
}
