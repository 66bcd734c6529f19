package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hongminglow/orders-be/internal/auth"
	"github.com/hongminglow/orders-be/internal/http/respond"
	"github.com/hongminglow/orders-be/internal/middleware"
	"github.com/hongminglow/orders-be/internal/models"
	"github.com/hongminglow/orders-be/internal/models/dto"
	"github.com/hongminglow/orders-be/internal/storage"
)

// OrdersHandler owns the order CRUD endpoints. All of them run behind
// RequireAuth, so the caller identity is always present in the context.
type OrdersHandler struct {
	store  storage.OrderStore
	logger *slog.Logger
}

// NewOrdersHandler constructs the handler.
func NewOrdersHandler(store storage.OrderStore, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{store: store, logger: logger}
}

// Register attaches order routes to the mux.
func (h *OrdersHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders", h.handleCreate)
	mux.HandleFunc("GET /orders/me", h.handleListMine)
	mux.HandleFunc("GET /orders/{id}", h.handleGet)
	mux.HandleFunc("PUT /orders/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /orders/{id}", h.handleDelete)
}

func (h *OrdersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	req, ok := decodeOrderRequest(w, r)
	if !ok {
		return
	}

	// The owner is always the verified caller; any owner field in the
	// payload is ignored.
	created, err := h.store.CreateOrder(r.Context(), models.Order{
		UserID:   caller.ID,
		Product:  req.Product,
		Quantity: req.Quantity,
		Status:   models.StatusPending,
	})
	if err != nil {
		h.logger.Error("create order failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create order")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *OrdersHandler) handleListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	orders, err := h.store.ListOrdersByUser(r.Context(), caller.ID)
	if err != nil {
		h.logger.Error("list orders failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	caller, orderID, ok := h.callerAndOrderID(w, r)
	if !ok {
		return
	}
	order, err := h.store.FindOrder(r.Context(), orderID, caller.ID)
	if err != nil {
		h.respondOrderError(w, err, "fetch")
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, orderID, ok := h.callerAndOrderID(w, r)
	if !ok {
		return
	}
	req, ok := decodeOrderRequest(w, r)
	if !ok {
		return
	}
	order, err := h.store.UpdateOrder(r.Context(), orderID, caller.ID, req.Product, req.Quantity)
	if err != nil {
		h.respondOrderError(w, err, "update")
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	caller, orderID, ok := h.callerAndOrderID(w, r)
	if !ok {
		return
	}
	order, err := h.store.DeleteOrder(r.Context(), orderID, caller.ID)
	if err != nil {
		h.respondOrderError(w, err, "delete")
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) callerAndOrderID(w http.ResponseWriter, r *http.Request) (auth.Identity, int64, bool) {
	caller, found := middleware.IdentityFromContext(r.Context())
	if !found {
		respond.Error(w, http.StatusUnauthorized, "Not authenticated")
		return auth.Identity{}, 0, false
	}
	orderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid order id")
		return auth.Identity{}, 0, false
	}
	return caller, orderID, true
}

// respondOrderError hides the difference between "absent" and "not yours":
// both are a 404 with the same body.
func (h *OrdersHandler) respondOrderError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	h.logger.Error(op+" order failed", "error", err)
	respond.Error(w, http.StatusInternalServerError, "failed to "+op+" order")
}

func decodeOrderRequest(w http.ResponseWriter, r *http.Request) (dto.OrderRequest, bool) {
	var req dto.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return dto.OrderRequest{}, false
	}
	req.Product = strings.TrimSpace(req.Product)
	if req.Product == "" {
		respond.Error(w, http.StatusBadRequest, "product is required")
		return dto.OrderRequest{}, false
	}
	if req.Quantity <= 0 {
		respond.Error(w, http.StatusBadRequest, "quantity must be positive")
		return dto.OrderRequest{}, false
	}
	return req, true
}
