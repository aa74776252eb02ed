package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts every calculator at its path plus the catalog.
func (s *Service) RegisterRoutes(r chi.Router) {
	for _, op := range s.ops {
		r.Post(op.Path, s.handle(op))
	}
	r.Get("/calculators", s.Catalog)
}
