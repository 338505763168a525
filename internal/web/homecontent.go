package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rectangle-technologies/jewellery-admin/internal/imaging"
	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

type homeContentData struct {
	PageData
	Entries    []model.HomeContentEntry
	Categories []model.HomeContentCategory
}

// HomeContentPage handles GET /home-content: the storefront home-page
// elements, one per slot, with the current value of each.
func (s *Server) HomeContentPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	data := homeContentData{
		PageData: PageData{Title: "Home Content", Email: claims.Email},
	}
	if r.URL.Query().Get("updated") == "1" {
		data.Success = "Home content updated successfully"
	}

	entries, err := s.Backend.HomeContent(r.Context(), token(r.Context()))
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch home content", "error", err)
		data.Error = errMessage(err, "Error fetching home content")
		s.Templates.Render(w, "home_content.html", &data)
		return
	}
	data.Entries = entries

	categories, err := s.Backend.HomeContentCategories(r.Context(), token(r.Context()))
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch home content categories", "error", err)
		data.Error = errMessage(err, "Error fetching home content")
		s.Templates.Render(w, "home_content.html", &data)
		return
	}

	data.Categories = categories
	s.Templates.Render(w, "home_content.html", &data)
}

// HomeContentSubmit handles POST /home-content: set one slot's value, which
// is either posted text or an uploaded image.
func (s *Server) HomeContentSubmit(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	key := r.FormValue("key")
	isImage := r.FormValue("isImage") == "1"
	value := strings.TrimSpace(r.FormValue("value"))

	renderError := func(errMsg string) {
		data := homeContentData{
			PageData: PageData{Title: "Home Content", Email: claims.Email, Error: errMsg},
		}
		if entries, err := s.Backend.HomeContent(r.Context(), token(r.Context())); err == nil {
			data.Entries = entries
		}
		if categories, err := s.Backend.HomeContentCategories(r.Context(), token(r.Context())); err == nil {
			data.Categories = categories
		}
		s.Templates.Render(w, "home_content.html", &data)
	}

	if key == "" {
		renderError("Please select a content slot")
		return
	}

	if isImage {
		file, header, err := r.FormFile("image")
		if err != nil {
			renderError("Please choose an image to upload")
			return
		}
		defer file.Close()

		photo, err := imaging.Prepare(file)
		if err != nil {
			renderError(err.Error())
			return
		}

		value, err = s.Backend.Upload(r.Context(), token(r.Context()), header.Filename, bytes.NewReader(photo.Data))
		if err != nil {
			if s.authFailed(w, r, err) {
				return
			}
			slog.Error("failed to upload home content image", "error", err)
			renderError(errMessage(err, "Error uploading image"))
			return
		}
	} else if value == "" {
		renderError("Please enter a value")
		return
	}

	entry := model.HomeContentEntry{Key: key, Value: value, IsImage: isImage}
	if err := s.Backend.SaveHomeContent(r.Context(), token(r.Context()), entry); err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to save home content", "key", key, "error", err)
		renderError(errMessage(err, "Error saving home content"))
		return
	}

	slog.Info("home content updated", "key", key, "by", claims.Email)
	http.Redirect(w, r, "/home-content?updated=1", http.StatusSeeOther)
}
