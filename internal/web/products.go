package web

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rectangle-technologies/jewellery-admin/internal/backend"
	"github.com/rectangle-technologies/jewellery-admin/internal/imaging"
	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

// maxUploadBytes bounds a product form POST. Photos are downscaled after
// upload, so the limit only has to fit raw camera exports.
const maxUploadBytes = 32 << 20

type productsPageData struct {
	PageData
	Products    []model.Product
	Page        int
	Pages       []int
	Search      string
	CurrentPath string
}

type productFormData struct {
	PageData
	Product    *model.Product
	Categories *backend.CategoryInfo
	Errors     model.FieldErrors
	IsEdit     bool
	BackURL    string
}

// ProductsPage handles GET /all-products. A non-empty search query switches
// to the unpaged name search; otherwise one fixed-size page is shown.
func (s *Server) ProductsPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	data := productsPageData{
		PageData:    PageData{Title: "All Products", Email: claims.Email},
		Page:        page,
		Search:      search,
		CurrentPath: r.URL.RequestURI(),
	}

	if search != "" {
		products, err := s.Backend.ProductsByName(r.Context(), token(r.Context()), search)
		if err != nil {
			if s.authFailed(w, r, err) {
				return
			}
			slog.Error("failed to search products", "error", err)
			data.Error = errMessage(err, "Error fetching products")
			s.Templates.Render(w, "products.html", &data)
			return
		}

		data.Products = products
		s.Templates.Render(w, "products.html", &data)
		return
	}

	result, err := s.Backend.Products(r.Context(), token(r.Context()), page, pageSize)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch products", "error", err)
		data.Error = errMessage(err, "Error fetching products")
		s.Templates.Render(w, "products.html", &data)
		return
	}

	data.Products = result.Products
	data.Pages = pageNumbers(totalPages(result.TotalProducts))
	s.Templates.Render(w, "products.html", &data)
}

// ProductNewPage handles GET /all-products/new.
func (s *Server) ProductNewPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	data := productFormData{
		PageData: PageData{Title: "New Product", Email: claims.Email},
		Product:  &model.Product{IsActive: true},
		BackURL:  backLink(r, "/all-products"),
	}

	categories, err := s.Backend.Categories(r.Context(), token(r.Context()))
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch categories", "error", err)
		data.Error = errMessage(err, "Error fetching categories")
		s.Templates.Render(w, "product_form.html", &data)
		return
	}

	data.Categories = categories
	s.Templates.Render(w, "product_form.html", &data)
}

// ProductCreateSubmit handles POST /all-products/new.
func (s *Server) ProductCreateSubmit(w http.ResponseWriter, r *http.Request) {
	s.saveProduct(w, r, "")
}

// ProductEditPage handles GET /all-products/{id}/edit, pre-filled with the
// current catalog entry.
func (s *Server) ProductEditPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())
	id := r.PathValue("id")

	data := productFormData{
		PageData: PageData{Title: "Edit Product", Email: claims.Email},
		IsEdit:   true,
		BackURL:  backLink(r, "/all-products"),
	}

	product, err := s.Backend.ProductBySKU(r.Context(), token(r.Context()), id)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch product", "product", id, "error", err)
		data.Error = errMessage(err, "Error fetching product")
		s.Templates.Render(w, "product_form.html", &data)
		return
	}
	data.Product = product

	categories, err := s.Backend.Categories(r.Context(), token(r.Context()))
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch categories", "error", err)
		data.Error = errMessage(err, "Error fetching categories")
		s.Templates.Render(w, "product_form.html", &data)
		return
	}

	data.Categories = categories
	s.Templates.Render(w, "product_form.html", &data)
}

// ProductUpdateSubmit handles POST /all-products/{id}/edit.
func (s *Server) ProductUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	s.saveProduct(w, r, r.PathValue("id"))
}

// saveProduct is the shared create/update path: parse the multipart form,
// process and upload any new photos, validate, and hand the entry to the
// backend. id is empty on create.
func (s *Server) saveProduct(w http.ResponseWriter, r *http.Request, id string) {
	claims := Claims(r.Context())
	isEdit := id != ""

	title := "New Product"
	if isEdit {
		title = "Edit Product"
	}
	back := backLink(r, "/all-products")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	product, errs := productFromForm(r)

	renderForm := func(errMsg string) {
		data := productFormData{
			PageData: PageData{Title: title, Email: claims.Email, Error: errMsg},
			Product:  &product,
			Errors:   errs,
			IsEdit:   isEdit,
			BackURL:  back,
		}
		if categories, err := s.Backend.Categories(r.Context(), token(r.Context())); err == nil {
			data.Categories = categories
		}
		s.Templates.Render(w, "product_form.html", &data)
	}

	// New photos are processed and uploaded before validation so a
	// just-uploaded image counts towards the at-least-one-image rule.
	var uploaded []string
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			file, err := header.Open()
			if err != nil {
				renderForm("Error reading uploaded photo")
				return
			}
			photo, err := imaging.Prepare(file)
			file.Close()
			if err != nil {
				renderForm(err.Error())
				return
			}

			url, err := s.Backend.Upload(r.Context(), token(r.Context()), header.Filename, bytes.NewReader(photo.Data))
			if err != nil {
				if s.authFailed(w, r, err) {
					return
				}
				slog.Error("failed to upload photo", "error", err)
				renderForm(errMessage(err, "Error uploading photo"))
				return
			}
			uploaded = append(uploaded, url)
		}
	}
	product.Images = append(product.Images, uploaded...)

	// Removed images are detached from the entry first; the stored files
	// are deleted only after the backend accepts the update.
	removed := r.Form["removeImages"]

	if verrs := model.ValidateProduct(product); len(verrs) > 0 {
		errs = append(errs, verrs...)
		renderForm(verrs[0].Message)
		return
	}
	if len(errs) > 0 {
		renderForm(errs[0].Message)
		return
	}

	var err error
	if isEdit {
		// Updates are addressed by the backend's record id, not the SKU in
		// the path. The id travels as a hidden field; if it went missing,
		// recover it from the catalog entry itself.
		if product.ID == "" {
			current, ferr := s.Backend.ProductBySKU(r.Context(), token(r.Context()), id)
			if ferr != nil {
				if s.authFailed(w, r, ferr) {
					return
				}
				slog.Error("failed to resolve product for update", "product", id, "error", ferr)
				renderForm(errMessage(ferr, "Error saving product"))
				return
			}
			product.ID = current.ID
		}
		err = s.Backend.UpdateProduct(r.Context(), token(r.Context()), product.ID, product)
	} else {
		err = s.Backend.CreateProduct(r.Context(), token(r.Context()), product)
	}
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to save product", "product", id, "error", err)
		renderForm(errMessage(err, "Error saving product"))
		return
	}

	for _, imageURL := range removed {
		if err := s.Backend.DeleteImage(r.Context(), token(r.Context()), imageURL); err != nil {
			// The entry no longer references the file; an orphan is tolerable.
			slog.Error("failed to delete removed image", "url", imageURL, "error", err)
		}
	}

	slog.Info("product saved", "sku", product.SKUID, "by", claims.Email)
	http.Redirect(w, r, "/all-products", http.StatusSeeOther)
}

// productFromForm builds a product from the posted fields. Money fields
// that fail to parse are reported as field errors rather than silently
// zeroed.
func productFromForm(r *http.Request) (model.Product, model.FieldErrors) {
	var errs model.FieldErrors

	parseAmount := func(field, label string) decimal.Decimal {
		raw := strings.TrimSpace(r.FormValue(field))
		if raw == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, model.FieldError{Field: field, Message: "Please enter a valid " + label})
			return decimal.Zero
		}
		return d
	}

	karat, _ := strconv.Atoi(r.FormValue("karatOfGold"))

	product := model.Product{
		ID:                   r.FormValue("id"),
		SKUID:                strings.TrimSpace(r.FormValue("skuId")),
		Name:                 strings.TrimSpace(r.FormValue("name")),
		Description:          r.FormValue("description"),
		Category:             r.FormValue("category"),
		KaratOfGold:          karat,
		WeightOfGold:         parseAmount("weightOfGold", "gold weight"),
		CostOfNaturalDiamond: parseAmount("costOfNaturalDiamond", "natural diamond cost"),
		CostOfLabDiamond:     parseAmount("costOfLabDiamond", "lab diamond cost"),
		CostOfLabour:         parseAmount("costOfLabour", "labour cost"),
		MiscellaneousCost:    parseAmount("miscellaneousCost", "miscellaneous cost"),
		IsCentralisedDiamond: r.FormValue("isCentralisedDiamond") == "on",
		IsNaturalDiamond:     r.FormValue("isNaturalDiamond") == "on",
		IsLabDiamond:         r.FormValue("isLabDiamond") == "on",
		IsActive:             r.FormValue("isActive") == "on",
		IsLandingPageProduct: r.FormValue("isLandingPageProduct") == "on",
		IsChatWithUs:         r.FormValue("isChatWithUs") == "on",
	}

	// Images kept from a previous upload round trip as hidden fields,
	// minus the ones marked for removal.
	removed := make(map[string]bool)
	for _, u := range r.Form["removeImages"] {
		removed[u] = true
	}
	for _, u := range r.Form["images"] {
		if u = strings.TrimSpace(u); u != "" && !removed[u] {
			product.Images = append(product.Images, u)
		}
	}

	// Sizes are posted as parallel indexed fields.
	for i := 0; ; i++ {
		name, ok := r.Form[fmt.Sprintf("sizeName%d", i)]
		if !ok {
			break
		}
		if len(name) == 0 || strings.TrimSpace(name[0]) == "" {
			continue
		}
		weight := parseAmount(fmt.Sprintf("sizeWeight%d", i), "size weight")
		product.Sizes = append(product.Sizes, model.ProductSize{
			DisplayName:   strings.TrimSpace(name[0]),
			WeightOfMetal: weight,
		})
	}

	return product, errs
}
