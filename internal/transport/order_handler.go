package transport

import (
	"context"
	"net/http"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/order"
)

type CreateOrderRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type CreateRatingRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
}

type transitionFunc func(ctx context.Context, actor auth.Actor, orderID uint) (*order.Order, error)

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	productID, err := idParam(r, "id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var req CreateOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	o, err := h.orders.Create(r.Context(), actor, productID, req.Quantity)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, o)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
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

	o, err := h.orders.Get(r.Context(), actor, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, o)
}

func (h *Handler) handleBuyerOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	orders, err := h.orders.ListForBuyer(r.Context(), actor, queryInt(r, "limit"), queryInt(r, "page"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleSupplierOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	orders, err := h.orders.ListForSupplier(r.Context(), actor,
		r.URL.Query().Get("status"), queryInt(r, "limit"), queryInt(r, "page"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleSupplierReport(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	report, err := h.orders.SupplierReport(r.Context(), actor)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

func (h *Handler) handleAcceptOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Accept)
}

func (h *Handler) handleDeclineOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Decline)
}

func (h *Handler) handleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Complete)
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Cancel)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
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

	o, err := fn(r.Context(), actor, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, o)
}

func (h *Handler) handleCreateRating(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	orderID, err := idParam(r, "id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var req CreateRatingRequest
	if !h.decode(w, r, &req) {
		return
	}

	rt, err := h.ratings.Create(r.Context(), actor, orderID, req.Score, req.Comment)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, rt)
}

func (h *Handler) handleSupplierSummary(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	sum, err := h.ratings.SupplierSummary(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sum)
}
