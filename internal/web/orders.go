package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

type ordersPageData struct {
	PageData
	Orders      []model.Order
	Page        int
	Pages       []int
	CurrentPath string
}

// OrdersPage handles GET /all-orders. One fixed-size page per request,
// newest orders first (backend default order).
func (s *Server) OrdersPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	data := ordersPageData{
		PageData:    PageData{Title: "All Orders", Email: claims.Email},
		Page:        page,
		CurrentPath: r.URL.RequestURI(),
	}

	result, err := s.Backend.Orders(r.Context(), token(r.Context()), page, pageSize)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch orders", "error", err)
		data.Error = errMessage(err, "Error fetching orders")
		s.Templates.Render(w, "orders.html", &data)
		return
	}

	data.Orders = result.Orders
	data.Pages = pageNumbers(totalPages(result.TotalOrders))
	s.Templates.Render(w, "orders.html", &data)
}
