package transport

import (
	"net/http"
	"strings"

	"marketplace-be/internal/product"

	"github.com/shopspring/decimal"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type CreateProductRequest struct {
	Name             string          `json:"name" validate:"required,max=100"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity" validate:"gte=0"`
	ReorderThreshold *int            `json:"reorder_threshold" validate:"omitempty,gte=0"`
	CategoryID       *uint           `json:"category_id"`
}

type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,max=100"`
	Description      *string          `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	Quantity         *int             `json:"quantity" validate:"omitempty,gte=0"`
	ReorderThreshold *int             `json:"reorder_threshold" validate:"omitempty,gte=0"`
	CategoryID       *uint            `json:"category_id"`
	ClearCategory    bool             `json:"clear_category"`
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context(),
		r.URL.Query().Get("filter"), queryInt(r, "limit"), queryInt(r, "page"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var req CategoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	c, err := h.categories.Create(r.Context(), actor, req.Name, req.Description)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), actor, id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryUint(r, "category_id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	res, err := h.products.List(r.Context(), product.ListOptions{
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
		CategoryID: categoryID,
		Limit:      queryInt(r, "limit"),
		Page:       queryInt(r, "page"),
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var req CreateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.products.Create(r.Context(), actor, product.CreateInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Quantity:         req.Quantity,
		ReorderThreshold: req.ReorderThreshold,
		CategoryID:       req.CategoryID,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var req UpdateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.products.Update(r.Context(), actor, id, product.UpdateInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Quantity:         req.Quantity,
		ReorderThreshold: req.ReorderThreshold,
		CategoryID:       req.CategoryID,
		ClearCategory:    req.ClearCategory,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.products.Delete(r.Context(), actor, id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSupplierProducts(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	products, err := h.products.ListBySupplier(r.Context(), actor)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *Handler) handleLowStock(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	products, err := h.products.LowStock(r.Context(), actor)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}
