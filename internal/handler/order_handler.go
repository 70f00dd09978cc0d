package handler

import (
	"errors"
	"net/http"
	"time"

	"shoestore-service/internal/model"
	"shoestore-service/internal/store"
	"shoestore-service/pkg/logger"
	"shoestore-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderRequest defines the payload for order creation
type OrderRequest struct {
	CustomerID uint       `json:"customer_id"`
	OrderDate  model.Date `json:"order_date"`
}

func (r *OrderRequest) Validate() error {
	if r.CustomerID == 0 {
		return errors.New("customer_id is required")
	}
	if r.OrderDate.IsZero() {
		return errors.New("order_date is required")
	}
	return nil
}

// OrderUpdateRequest carries a partial update; absent fields keep
// their prior value
type OrderUpdateRequest struct {
	CustomerID *uint       `json:"customer_id"`
	OrderDate  *model.Date `json:"order_date"`
}

func (r *OrderUpdateRequest) Validate() error {
	if r.CustomerID != nil && *r.CustomerID == 0 {
		return errors.New("customer_id must not be zero")
	}
	if r.OrderDate != nil && r.OrderDate.IsZero() {
		return errors.New("order_date must be a valid date")
	}
	return nil
}

func (r *OrderUpdateRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.CustomerID != nil {
		updates["customer_id"] = *r.CustomerID
	}
	if r.OrderDate != nil {
		updates["order_date"] = *r.OrderDate
	}
	return updates
}

// OrderHandler serves the order CRUD endpoints
type OrderHandler struct {
	store store.OrderRepository
}

func NewOrderHandler(s store.OrderRepository) *OrderHandler {
	return &OrderHandler{store: s}
}

// Create handles POST /order. Creating an order does not touch product
// stock; line items are added separately.
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new order")
	prometheus.RecordEntityOperation("order", "create")

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Order validation failed", zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	order := model.Order{
		CustomerID: req.CustomerID,
		OrderDate:  req.OrderDate,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.store.Create(c.Request().Context(), &order); err != nil {
		log.Error("Failed to create order",
			zap.Uint("customer_id", req.CustomerID),
			zap.Error(err))
		return storeError(c, "Order", err)
	}

	log.Info("Order created successfully",
		zap.Uint("order_id", order.OrderID),
		zap.Uint("customer_id", order.CustomerID),
		zap.String("order_date", order.OrderDate.String()))
	return c.JSON(http.StatusCreated, order)
}

// List handles GET /orders
func (h *OrderHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	orders, err := h.store.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve orders", zap.Error(err))
		return storeError(c, "Order", err)
	}

	log.Info("Orders retrieved successfully", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /order/:id
func (h *OrderHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "get")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid order ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid order ID")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	order, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		log.Warn("Order not found", zap.Uint("order_id", id), zap.Error(err))
		return storeError(c, "Order", err)
	}

	log.Info("Order retrieved successfully",
		zap.Uint("order_id", order.OrderID),
		zap.Uint("customer_id", order.CustomerID))
	return c.JSON(http.StatusOK, order)
}

// Update handles PUT /order/:id as a partial update
func (h *OrderHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "update")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid order ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid order ID")
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("order_id", id), zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Order validation failed", zap.Uint("order_id", id), zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	order, err := h.store.Update(c.Request().Context(), id, req.updates())
	if err != nil {
		log.Error("Failed to update order", zap.Uint("order_id", id), zap.Error(err))
		return storeError(c, "Order", err)
	}

	log.Info("Order updated successfully",
		zap.Uint("order_id", order.OrderID),
		zap.String("order_date", order.OrderDate.String()))
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /order/:id. Orders with line items or shipments
// are rejected by the RESTRICT foreign key.
func (h *OrderHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid order ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid order ID")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		log.Warn("Failed to delete order", zap.Uint("order_id", id), zap.Error(err))
		return storeError(c, "Order", err)
	}

	log.Info("Order deleted successfully", zap.Uint("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Order deleted successfully",
	})
}
