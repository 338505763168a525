package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

type usersPageData struct {
	PageData
	Users       []model.User
	Page        int
	Pages       []int
	Phone       string
	CurrentPath string
}

// UsersPage handles GET /all-users. A non-empty phone query switches to the
// unpaged phone lookup; otherwise one fixed-size page of users is shown.
func (s *Server) UsersPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	phone := r.URL.Query().Get("phone")

	data := usersPageData{
		PageData:    PageData{Title: "All Users", Email: claims.Email},
		Page:        page,
		Phone:       phone,
		CurrentPath: r.URL.RequestURI(),
	}

	if phone != "" {
		// Search overrides pagination; results are not paged.
		if !model.ValidPhone(phone) {
			data.Error = "Please enter a valid mobile number"
			s.Templates.Render(w, "users.html", &data)
			return
		}

		user, err := s.Backend.UserByPhone(r.Context(), token(r.Context()), phone)
		if err != nil {
			if s.authFailed(w, r, err) {
				return
			}
			slog.Error("failed to look up user by phone", "error", err)
			data.Error = errMessage(err, "Error fetching user")
			s.Templates.Render(w, "users.html", &data)
			return
		}

		data.Users = []model.User{*user}
		s.Templates.Render(w, "users.html", &data)
		return
	}

	result, err := s.Backend.Users(r.Context(), token(r.Context()), page, pageSize)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch users", "error", err)
		data.Error = errMessage(err, "Error fetching users")
		s.Templates.Render(w, "users.html", &data)
		return
	}

	data.Users = result.Users
	data.Pages = pageNumbers(totalPages(result.TotalUsers))
	s.Templates.Render(w, "users.html", &data)
}

// UserDetailPage handles GET /user/{userId}: the user's profile plus all of
// their orders.
func (s *Server) UserDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())
	userID := r.PathValue("userId")

	user, err := s.Backend.UserByID(r.Context(), token(r.Context()), userID)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch user", "user", userID, "error", err)
		s.Templates.Render(w, "user_detail.html", &struct {
			PageData
			User    *model.User
			Orders  []model.Order
			BackURL string
		}{
			PageData: PageData{Title: "User Details", Email: claims.Email, Error: errMessage(err, "Error fetching user")},
			BackURL:  backLink(r, "/all-users"),
		})
		return
	}

	orders, err := s.Backend.OrdersByUser(r.Context(), token(r.Context()), user.ID)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		// The profile is still useful without the order history.
		slog.Error("failed to fetch user orders", "user", userID, "error", err)
	}

	s.Templates.Render(w, "user_detail.html", &struct {
		PageData
		User    *model.User
		Orders  []model.Order
		BackURL string
	}{
		PageData: PageData{Title: user.Name, Email: claims.Email},
		User:     user,
		Orders:   orders,
		BackURL:  backLink(r, "/all-users"),
	})
}
