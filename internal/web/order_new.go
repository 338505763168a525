package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rectangle-technologies/jewellery-admin/internal/backend"
	"github.com/rectangle-technologies/jewellery-admin/internal/model"
	"github.com/rectangle-technologies/jewellery-admin/internal/store"
)

// The custom order composer. A draft lives in the local state database,
// keyed by session, from the moment a customer is bound until the order is
// submitted to the backend or abandoned. Line items are validated as they
// are added or edited; the final submit only re-checks the draft-level
// rules (description present, at least one item).

type orderNewData struct {
	PageData
	Draft *model.OrderDraft
}

type orderNewItemData struct {
	PageData
	Product   *model.Product
	Item      model.LineItem
	EditIndex int // -1 when adding
	SKU       string
}

// OrderNewPage handles GET /order/create-custom. Without a draft it shows
// the customer phone search; with one, the composing view.
func (s *Server) OrderNewPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	draft, err := store.GetDraft(r.Context(), s.DB, claims.ID)
	if err != nil {
		slog.Error("failed to load order draft", "error", err)
	}

	s.Templates.Render(w, "order_new.html", &orderNewData{
		PageData: PageData{Title: "Create Custom Order", Email: claims.Email},
		Draft:    draft,
	})
}

// OrderNewCustomerSubmit handles POST /order/create-custom/customer: the
// phone lookup that moves the composer from searching to composing.
func (s *Server) OrderNewCustomerSubmit(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())
	phone := strings.TrimSpace(r.FormValue("phone"))

	renderSearch := func(errMsg string) {
		s.Templates.Render(w, "order_new.html", &orderNewData{
			PageData: PageData{Title: "Create Custom Order", Email: claims.Email, Error: errMsg},
		})
	}

	// Validation happens before any network call.
	if !model.ValidPhone(phone) {
		renderSearch("Please enter a valid mobile number")
		return
	}

	customer, err := s.Backend.UserByPhone(r.Context(), token(r.Context()), phone)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to look up customer", "error", err)
		renderSearch(errMessage(err, "Error fetching user"))
		return
	}

	if err := store.StartDraft(r.Context(), s.DB, claims.ID, *customer); err != nil {
		slog.Error("failed to start order draft", "error", err)
		renderSearch("Something went wrong, please try again.")
		return
	}

	http.Redirect(w, r, "/order/create-custom", http.StatusSeeOther)
}

// OrderNewCancelSubmit handles POST /order/create-custom/cancel.
func (s *Server) OrderNewCancelSubmit(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())
	if err := store.DeleteDraft(r.Context(), s.DB, claims.ID); err != nil {
		slog.Error("failed to discard order draft", "error", err)
	}
	http.Redirect(w, r, "/order/create-custom", http.StatusSeeOther)
}

// OrderNewItemPage handles GET /order/create-custom/add: the SKU entry form.
func (s *Server) OrderNewItemPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())
	s.Templates.Render(w, "order_new_item.html", &orderNewItemData{
		PageData:  PageData{Title: "Add Product", Email: claims.Email},
		EditIndex: -1,
	})
}

// OrderNewItemLookupSubmit handles POST /order/create-custom/add: look up a
// product by SKU and show the line item fields.
func (s *Server) OrderNewItemLookupSubmit(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())
	sku := strings.TrimSpace(r.FormValue("sku"))

	data := orderNewItemData{
		PageData:  PageData{Title: "Add Product", Email: claims.Email},
		EditIndex: -1,
		SKU:       sku,
	}

	if sku == "" {
		data.Error = "Please enter a valid SKU ID"
		s.Templates.Render(w, "order_new_item.html", &data)
		return
	}

	product, err := s.Backend.ProductBySKU(r.Context(), token(r.Context()), sku)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to look up product", "sku", sku, "error", err)
		data.Error = errMessage(err, "Error fetching product")
		s.Templates.Render(w, "order_new_item.html", &data)
		return
	}

	data.Product = product
	data.Item = model.LineItem{
		ProductID: product.ID,
		SKUID:     product.SKUID,
		Name:      product.Name,
		Quantity:  1,
	}
	if len(product.Images) > 0 {
		data.Item.Image = product.Images[0]
	}
	s.Templates.Render(w, "order_new_item.html", &data)
}

// lineItemFromForm builds a line item from the posted fields and the
// looked-up product, then validates it.
func lineItemFromForm(r *http.Request, product *model.Product) (model.LineItem, model.FieldErrors) {
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	price, _ := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
	karat, _ := strconv.Atoi(r.FormValue("karatOfGold"))

	item := model.LineItem{
		ProductID:   product.ID,
		SKUID:       product.SKUID,
		Name:        product.Name,
		Quantity:    quantity,
		Size:        r.FormValue("size"),
		Price:       price,
		DiamondType: r.FormValue("diamondType"),
		KaratOfGold: karat,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}

	return item, model.ValidateLineItem(item, product.RequiresKarat())
}

// OrderNewItemAppendSubmit handles POST /order/create-custom/items:
// validate the fields and append the line item to the draft.
func (s *Server) OrderNewItemAppendSubmit(w http.ResponseWriter, r *http.Request) {
	s.saveLineItem(w, r, -1)
}

// OrderNewItemEditPage handles GET /order/create-custom/items/{index}/edit:
// the same field set, pre-filled from the existing line item.
func (s *Server) OrderNewItemEditPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	draft, err := store.GetDraft(r.Context(), s.DB, claims.ID)
	if err != nil || draft == nil || index < 0 || index >= len(draft.Items) {
		http.Redirect(w, r, "/order/create-custom", http.StatusSeeOther)
		return
	}
	item := draft.Items[index]

	data := orderNewItemData{
		PageData:  PageData{Title: "Edit Product", Email: claims.Email},
		Item:      item,
		EditIndex: index,
		SKU:       item.SKUID,
	}

	// Re-fetch the product for its size and diamond options.
	product, err := s.Backend.ProductBySKU(r.Context(), token(r.Context()), item.SKUID)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to look up product for edit", "sku", item.SKUID, "error", err)
		data.Error = errMessage(err, "Error fetching product")
		s.Templates.Render(w, "order_new_item.html", &data)
		return
	}

	data.Product = product
	s.Templates.Render(w, "order_new_item.html", &data)
}

// OrderNewItemReplaceSubmit handles POST /order/create-custom/items/{index}:
// validate and replace the line item in place.
func (s *Server) OrderNewItemReplaceSubmit(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	s.saveLineItem(w, r, index)
}

// saveLineItem is the shared append/replace path: re-fetch the product,
// validate the posted fields against it, and store the item.
func (s *Server) saveLineItem(w http.ResponseWriter, r *http.Request, editIndex int) {
	claims := Claims(r.Context())
	sku := strings.TrimSpace(r.FormValue("sku"))

	title := "Add Product"
	if editIndex >= 0 {
		title = "Edit Product"
	}

	// The product is fetched again rather than trusting hidden fields;
	// it decides whether karat is required.
	product, err := s.Backend.ProductBySKU(r.Context(), token(r.Context()), sku)
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to look up product", "sku", sku, "error", err)
		s.Templates.Render(w, "order_new_item.html", &orderNewItemData{
			PageData:  PageData{Title: title, Email: claims.Email, Error: errMessage(err, "Error fetching product")},
			EditIndex: editIndex,
			SKU:       sku,
		})
		return
	}

	item, errs := lineItemFromForm(r, product)
	if len(errs) > 0 {
		s.Templates.Render(w, "order_new_item.html", &orderNewItemData{
			PageData:  PageData{Title: title, Email: claims.Email, Error: errs.Error()},
			Product:   product,
			Item:      item,
			EditIndex: editIndex,
			SKU:       sku,
		})
		return
	}

	if editIndex >= 0 {
		err = store.ReplaceDraftItem(r.Context(), s.DB, claims.ID, editIndex, item)
	} else {
		err = store.AppendDraftItem(r.Context(), s.DB, claims.ID, item)
	}
	if err != nil {
		slog.Error("failed to save draft item", "error", err)
		s.Templates.Render(w, "order_new_item.html", &orderNewItemData{
			PageData:  PageData{Title: title, Email: claims.Email, Error: "Something went wrong, please try again."},
			Product:   product,
			Item:      item,
			EditIndex: editIndex,
			SKU:       sku,
		})
		return
	}

	http.Redirect(w, r, "/order/create-custom", http.StatusSeeOther)
}

// OrderNewItemRemoveSubmit handles POST /order/create-custom/items/{index}/remove.
func (s *Server) OrderNewItemRemoveSubmit(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	if err := store.RemoveDraftItem(r.Context(), s.DB, claims.ID, index); err != nil {
		slog.Error("failed to remove draft item", "index", index, "error", err)
	}
	http.Redirect(w, r, "/order/create-custom", http.StatusSeeOther)
}

// OrderNewSubmit handles POST /order/create-custom/submit. The posted
// description is saved to the draft first so a failed submit preserves
// everything; validation happens before any backend call.
func (s *Server) OrderNewSubmit(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())
	description := r.FormValue("description")

	draft, err := store.GetDraft(r.Context(), s.DB, claims.ID)
	if err != nil || draft == nil {
		slog.Error("failed to load order draft for submit", "error", err)
		http.Redirect(w, r, "/order/create-custom", http.StatusSeeOther)
		return
	}

	if err := store.SetDraftDescription(r.Context(), s.DB, claims.ID, description); err != nil {
		slog.Error("failed to save draft description", "error", err)
	}
	draft.Description = description

	renderComposer := func(errMsg string) {
		s.Templates.Render(w, "order_new.html", &orderNewData{
			PageData: PageData{Title: "Create Custom Order", Email: claims.Email, Error: errMsg},
			Draft:    draft,
		})
	}

	if errs := model.ValidateDraftSubmit(*draft); len(errs) > 0 {
		renderComposer(errs[0].Message)
		return
	}

	order, err := s.Backend.CreateCustomOrder(r.Context(), token(r.Context()), backend.CreateCustomOrderRequest{
		UserID: draft.Customer.ID,
		CustomOrderDetails: model.CustomOrderDetails{
			IsCustomOrder: true,
			Description:   draft.Description,
		},
		Products: draft.Items,
	})
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		// The draft stays intact so the submit can be retried.
		slog.Error("failed to create custom order", "error", err)
		renderComposer(errMessage(err, "Error creating order"))
		return
	}

	if err := store.DeleteDraft(r.Context(), s.DB, claims.ID); err != nil {
		slog.Error("failed to clear submitted draft", "error", err)
	}

	slog.Info("custom order created", "order", order.ID, "customer", draft.Customer.ID, "by", claims.Email)
	http.Redirect(w, r, "/order/"+url.PathEscape(order.ID), http.StatusSeeOther)
}
