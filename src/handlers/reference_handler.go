package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/utils"
)

type CountryReader interface {
	GetCountryByID(ctx context.Context, id int64) (*models.Country, error)
	ListCountries(ctx context.Context, nameFilter string) ([]models.Country, error)
}

type ProductReader interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, search string, limit int) ([]models.Product, error)
}

// ReferenceHandler exposes the country and product tables the calculator reads.
type ReferenceHandler struct {
	countries CountryReader
	products  ProductReader
}

func NewReferenceHandler(countries CountryReader, products ProductReader) *ReferenceHandler {
	return &ReferenceHandler{countries: countries, products: products}
}

func (h *ReferenceHandler) HandleListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countries.ListCountries(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		logger.FromContext(r.Context()).Error("Error listing countries", "error", err)
		utils.SendJSONError(w, r, "Error listing countries", http.StatusInternalServerError)
		return
	}
	if countries == nil {
		countries = []models.Country{}
	}
	utils.SendJSON(w, r, http.StatusOK, countries)
}

func (h *ReferenceHandler) HandleGetCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	country, err := h.countries.GetCountryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendJSONError(w, r, "Country not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Error retrieving country", "id", id, "error", err)
		utils.SendJSONError(w, r, "Error retrieving country", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, r, http.StatusOK, country)
}

func (h *ReferenceHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := strings.TrimSpace(r.URL.Query().Get("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			utils.SendJSONError(w, r, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	products, err := h.products.ListProducts(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error listing products", "error", err)
		utils.SendJSONError(w, r, "Error listing products", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	utils.SendJSON(w, r, http.StatusOK, products)
}

func (h *ReferenceHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	product, err := h.products.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendJSONError(w, r, "Product not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Error retrieving product", "id", id, "error", err)
		utils.SendJSONError(w, r, "Error retrieving product", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, r, http.StatusOK, product)
}
