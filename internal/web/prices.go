package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

type pricesPageData struct {
	PageData
	Prices *model.MetalPrices
}

// PricesPage handles GET /metal-prices.
func (s *Server) PricesPage(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	data := pricesPageData{
		PageData: PageData{Title: "Metal Prices", Email: claims.Email},
	}
	if r.URL.Query().Get("updated") == "1" {
		data.Success = "Prices updated successfully"
	}

	prices, err := s.Backend.MetalPrices(r.Context(), token(r.Context()))
	if err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to fetch metal prices", "error", err)
		data.Error = errMessage(err, "Error fetching prices")
		s.Templates.Render(w, "prices.html", &data)
		return
	}

	data.Prices = prices
	s.Templates.Render(w, "prices.html", &data)
}

// PricesSubmit handles POST /metal-prices. The whole record is overwritten;
// all three prices must be present.
func (s *Server) PricesSubmit(w http.ResponseWriter, r *http.Request) {
	claims := Claims(r.Context())

	parse := func(field string) decimal.Decimal {
		d, _ := decimal.NewFromString(strings.TrimSpace(r.FormValue(field)))
		return d
	}
	prices := model.MetalPrices{
		GoldPricePerGram:            parse("goldPricePerGram"),
		NaturalDiamondPricePerCarat: parse("naturalDiamondPricePerCarat"),
		LabDiamondPricePerCarat:     parse("labDiamondPricePerCarat"),
	}

	renderForm := func(errMsg string) {
		s.Templates.Render(w, "prices.html", &pricesPageData{
			PageData: PageData{Title: "Metal Prices", Email: claims.Email, Error: errMsg},
			Prices:   &prices,
		})
	}

	if errs := model.ValidateMetalPrices(prices); len(errs) > 0 {
		renderForm(errs[0].Message)
		return
	}

	if err := s.Backend.UpdateMetalPrices(r.Context(), token(r.Context()), prices); err != nil {
		if s.authFailed(w, r, err) {
			return
		}
		slog.Error("failed to update metal prices", "error", err)
		renderForm(errMessage(err, "Error updating prices"))
		return
	}

	slog.Info("metal prices updated", "by", claims.Email)
	http.Redirect(w, r, "/metal-prices?updated=1", http.StatusSeeOther)
}
