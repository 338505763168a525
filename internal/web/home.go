package web

import (
	"log/slog"
	"net/http"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

// HomePage handles GET /. It shows this month's stats and the most recent
// orders.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	data, err := s.Backend.DashboardData(r.Context(), token(r.Context()))
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch dashboard data", "error", err)
		s.Templates.Render(w, "home.html", &struct {
			PageData
			Data *model.DashboardData
		}{
			PageData: PageData{Title: "Dashboard", Email: claims.Email, Error: errMessage(err, "Error fetching dashboard data")},
		})
		return
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Data *model.DashboardData
	}{
		PageData: PageData{Title: "Dashboard", Email: claims.Email},
		Data:     data,
	})
}
