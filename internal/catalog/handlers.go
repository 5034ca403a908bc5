package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dnminh/fashionshop-backend/internal/types/catalog"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type categoryReq struct {
	Name string `json:"cat_name"`
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	c, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, err, "Error creating category")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Category created successfully",
		"category": c,
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeError(w, err, "Error retrieving categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Error retrieving category")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	c, err := h.svc.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, err, "Error updating category")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Category updated successfully",
		"category": c,
	})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Error deleting category")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	p, err := h.svc.CreateProduct(r.Context(), in)
	if err != nil {
		writeError(w, err, "Error creating product")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"product": p,
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeError(w, err, "Error retrieving products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.SearchProducts(r.Context(), productFilterFromQuery(r))
	if err != nil {
		writeError(w, err, "Error searching products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Error retrieving product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	p, err := h.svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err, "Error updating product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"product": p,
	})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Error deleting product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (h *Handler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	var in VariantInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	v, err := h.svc.CreateVariant(r.Context(), in)
	if err != nil {
		writeError(w, err, "Error creating variant")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Variant created successfully",
		"variant": v,
	})
}

func (h *Handler) ListVariants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.VariantFilter{
		ProductID: q.Get("pro_id"),
		ColorID:   q.Get("color_id"),
		SizeID:    q.Get("size_id"),
	}
	variants, err := h.svc.ListVariants(r.Context(), f)
	if err != nil {
		writeError(w, err, "Error retrieving variants")
		return
	}
	writeJSON(w, http.StatusOK, variants)
}

func (h *Handler) GetVariant(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetVariant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Error retrieving variant")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	var in VariantInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	v, err := h.svc.UpdateVariant(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err, "Error updating variant")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Variant updated successfully",
		"variant": v,
	})
}

func (h *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteVariant(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Error deleting variant")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Variant deleted successfully"})
}

func productFilterFromQuery(r *http.Request) catalog.ProductFilter {
	q := r.URL.Query()
	f := catalog.ProductFilter{
		CategoryID: q.Get("cat_id"),
		Status:     q.Get("status_product"),
		Query:      q.Get("q"),
	}
	if v := q.Get("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	if v := q.Get("hasImage"); v == "true" || v == "false" {
		b := v == "true"
		f.HasImage = &b
	}
	if v := q.Get("dateFrom"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DateFrom = &t
		}
	}
	if v := q.Get("dateTo"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Millisecond)
			f.DateTo = &end
		}
	}
	return f
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case ErrCategoryNotFound, ErrProductNotFound, ErrVariantNotFound, ErrColorNotFound, ErrSizeNotFound, ErrImageNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case ErrCategoryExists, ErrCategoryName, ErrInvalidID:
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": fallback})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
