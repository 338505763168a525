package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

type orderDetailData struct {
	PageData
	Order        *model.Order
	NextStatuses []string
	BackURL      string
}

// OrderDetailPage handles GET /order/{orderId}.
func (s *Server) OrderDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())
	orderID := r.PathValue("orderId")

	data := orderDetailData{
		PageData: PageData{Title: "Order Detail", Email: claims.Email},
		BackURL:  backLink(r, "/all-orders"),
	}
	if msg := r.URL.Query().Get("updated"); msg != "" {
		data.Success = "Order marked as " + msg + " successfully"
	}

	order, err := s.Backend.OrderByID(r.Context(), token(r.Context()), orderID)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch order", "order", orderID, "error", err)
		data.Error = errMessage(err, "Error fetching order")
		s.Templates.Render(w, "order_detail.html", &data)
		return
	}

	data.Order = order
	data.NextStatuses = model.NextStatuses(order.Status)
	s.Templates.Render(w, "order_detail.html", &data)
}

// OrderStatusSubmit handles POST /order/{orderId}/status. The first POST
// renders a confirmation page; the confirmed POST invokes the transition
// and redirects back to the (re-fetched) detail page. Local state is never
// mutated optimistically.
func (s *Server) OrderStatusSubmit(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())
	orderID := r.PathValue("orderId")
	target := r.FormValue("status")
	dateStr := r.FormValue("deliveredOn")
	back := backLink(r, "/all-orders")

	// Always check the transition against the server-authoritative status.
	order, err := s.Backend.OrderByID(r.Context(), token(r.Context()), orderID)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch order for transition", "order", orderID, "error", err)
		s.Templates.Render(w, "order_detail.html", &orderDetailData{
			PageData: PageData{Title: "Order Detail", Email: claims.Email, Error: errMessage(err, "Error fetching order")},
			BackURL:  back,
		})
		return
	}

	renderDetail := func(errMsg string) {
		s.Templates.Render(w, "order_detail.html", &orderDetailData{
			PageData:     PageData{Title: "Order Detail", Email: claims.Email, Error: errMsg},
			Order:        order,
			NextStatuses: model.NextStatuses(order.Status),
			BackURL:      back,
		})
	}

	if !model.CanTransition(order.Status, target) {
		renderDetail("Order cannot be marked as " + target)
		return
	}

	// Delivery needs a chosen date before anything goes to the backend.
	var deliveredOn string
	if target == model.OrderStatusDelivered {
		if dateStr == "" {
			renderDetail("Please select a Delivery Date")
			return
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			renderDetail("Please select a valid Delivery Date")
			return
		}
		deliveredOn = model.FormatDeliveredOn(date)
	}

	// Explicit confirmation step before any transition.
	if r.FormValue("confirm") != "1" {
		s.Templates.Render(w, "order_status_confirm.html", &struct {
			PageData
			Order       *model.Order
			Target      string
			DeliveredOn string
			BackURL     string
		}{
			PageData:    PageData{Title: "Confirm", Email: claims.Email},
			Order:       order,
			Target:      target,
			DeliveredOn: dateStr,
			BackURL:     back,
		})
		return
	}

	if err := s.Backend.UpdateOrderStatus(r.Context(), token(r.Context()), orderID, target, deliveredOn); err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to update order status", "order", orderID, "status", target, "error", err)
		renderDetail(errMessage(err, "Error updating order"))
		return
	}

	slog.Info("order status updated", "order", orderID, "status", target, "by", claims.Email)
	q := url.Values{"updated": {target}}
	if back := r.FormValue("back"); back != "" {
		q.Set("back", back)
	}
	http.Redirect(w, r, "/order/"+url.PathEscape(orderID)+"?"+q.Encode(), http.StatusSeeOther)
}
