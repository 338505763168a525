package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/rectangle-technologies/jewellery-admin/internal/backend"
	"github.com/rectangle-technologies/jewellery-admin/internal/model"
	"github.com/rectangle-technologies/jewellery-admin/internal/session"
	webembed "github.com/rectangle-technologies/jewellery-admin/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatAmount":   model.FormatAmount,
		"formatDateTime": model.FormatDateTime,
		// Optional dates (delivery date, date of birth) arrive as pointers.
		"formatDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return model.FormatDate(*t)
		},
		"formatDiamondType": model.FormatDiamondType,
		"statusClass": func(status string) string {
			switch status {
			case model.OrderStatusDelivered:
				return "status-delivered"
			case model.OrderStatusCancelled:
				return "status-cancelled"
			case model.OrderStatusShipped:
				return "status-shipped"
			default:
				return "status-placed"
			}
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"home.html",
		"products.html",
		"product_form.html",
		"orders.html",
		"order_detail.html",
		"order_status_confirm.html",
		"order_new.html",
		"order_new_item.html",
		"users.html",
		"user_detail.html",
		"prices.html",
		"home_content.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Email   string
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Backend   *backend.Client
	DB        *sql.DB
	Sessions  *session.Service
	Templates *Templates
}

// pageSize is the fixed page size for all listings.
const pageSize = 20

// totalPages computes the page count for a listing.
func totalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// pageNumbers returns 1..n for the pagination strip.
func pageNumbers(n int) []int {
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
