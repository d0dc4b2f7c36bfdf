package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mehdios/senteur/internal/errors"
	"github.com/mehdios/senteur/internal/model"
	"github.com/mehdios/senteur/internal/service"
)

type OrderHandler struct {
	svc    service.OrderService
	logger *slog.Logger
}

func NewOrderHandler(svc service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, logger: logger}
}

// Create handles checkout submissions. Success depends only on
// persistence; notification side effects never change the response.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var order model.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		h.logger.Warn("invalid request body for Create")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.svc.Create(r.Context(), order)
	if err != nil {
		if errors.IsInvalid(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("Create failed", slog.Any("error", err))
		http.Error(w, "failed to create order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetAll lists orders, newest first.
func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.GetAll(r.Context())
	if err != nil {
		h.logger.Error("GetAll failed", slog.Any("error", err))
		http.Error(w, "failed to list orders", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// GetByID returns one order.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		h.logger.Error("GetByID failed", slog.String("id", id), slog.Any("error", err))
		http.Error(w, "failed to fetch order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// UpdateStatus applies an admin status transition.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("invalid request body for UpdateStatus", slog.String("id", id))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, body.Status); err != nil {
		switch {
		case errors.IsInvalid(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.IsNotFound(err):
			http.Error(w, "order not found", http.StatusNotFound)
		default:
			h.logger.Error("UpdateStatus failed", slog.String("id", id), slog.Any("error", err))
			http.Error(w, "failed to update order", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
