package web

import (
	"database/sql"
	"net/http"

	"github.com/rectangle-technologies/jewellery-admin/internal/backend"
	"github.com/rectangle-technologies/jewellery-admin/internal/session"
	webembed "github.com/rectangle-technologies/jewellery-admin/web"
)

// NewRouter creates the dashboard router with all page routes registered.
func NewRouter(client *backend.Client, db *sql.DB, sessions *session.Service) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Backend:   client,
		DB:        db,
		Sessions:  sessions,
		Templates: templates,
	}

	mux := http.NewServeMux()
	auth := s.RequireSession

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Home dashboard.
	mux.Handle("GET /{$}", auth(http.HandlerFunc(s.HomePage)))

	// Products.
	mux.Handle("GET /all-products", auth(http.HandlerFunc(s.ProductsPage)))
	mux.Handle("GET /all-products/new", auth(http.HandlerFunc(s.ProductNewPage)))
	mux.Handle("POST /all-products/new", auth(http.HandlerFunc(s.ProductCreateSubmit)))
	mux.Handle("GET /all-products/{id}/edit", auth(http.HandlerFunc(s.ProductEditPage)))
	mux.Handle("POST /all-products/{id}/edit", auth(http.HandlerFunc(s.ProductUpdateSubmit)))

	// Orders.
	mux.Handle("GET /all-orders", auth(http.HandlerFunc(s.OrdersPage)))
	mux.Handle("GET /order/create-custom", auth(http.HandlerFunc(s.OrderNewPage)))
	mux.Handle("POST /order/create-custom/customer", auth(http.HandlerFunc(s.OrderNewCustomerSubmit)))
	mux.Handle("POST /order/create-custom/cancel", auth(http.HandlerFunc(s.OrderNewCancelSubmit)))
	mux.Handle("GET /order/create-custom/add", auth(http.HandlerFunc(s.OrderNewItemPage)))
	mux.Handle("POST /order/create-custom/add", auth(http.HandlerFunc(s.OrderNewItemLookupSubmit)))
	mux.Handle("POST /order/create-custom/items", auth(http.HandlerFunc(s.OrderNewItemAppendSubmit)))
	mux.Handle("GET /order/create-custom/items/{index}/edit", auth(http.HandlerFunc(s.OrderNewItemEditPage)))
	mux.Handle("POST /order/create-custom/items/{index}", auth(http.HandlerFunc(s.OrderNewItemReplaceSubmit)))
	mux.Handle("POST /order/create-custom/items/{index}/remove", auth(http.HandlerFunc(s.OrderNewItemRemoveSubmit)))
	mux.Handle("POST /order/create-custom/submit", auth(http.HandlerFunc(s.OrderNewSubmit)))
	mux.Handle("GET /order/{orderId}", auth(http.HandlerFunc(s.OrderDetailPage)))
	mux.Handle("POST /order/{orderId}/status", auth(http.HandlerFunc(s.OrderStatusSubmit)))

	// Users.
	mux.Handle("GET /all-users", auth(http.HandlerFunc(s.UsersPage)))
	mux.Handle("GET /user/{userId}", auth(http.HandlerFunc(s.UserDetailPage)))

	// Pricing.
	mux.Handle("GET /metal-prices", auth(http.HandlerFunc(s.PricesPage)))
	mux.Handle("POST /metal-prices", auth(http.HandlerFunc(s.PricesSubmit)))

	// Home page content.
	mux.Handle("GET /home-content", auth(http.HandlerFunc(s.HomeContentPage)))
	mux.Handle("POST /home-content", auth(http.HandlerFunc(s.HomeContentSubmit)))

	return mux, nil
}
