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

// OrderDetailRequest defines the payload for adding a line item to an order
type OrderDetailRequest struct {
	OrderID   uint `json:"order_id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (r *OrderDetailRequest) Validate() error {
	if r.OrderID == 0 {
		return errors.New("order_id is required")
	}
	if r.ProductID == 0 {
		return errors.New("product_id is required")
	}
	if r.Quantity <= 0 {
		return errors.New("quantity must be a positive integer")
	}
	return nil
}

// OrderDetailHandler serves the order line item endpoints. Line items are
// addressed by the composite (order_id, product_id) key and support only
// create, list and delete.
type OrderDetailHandler struct {
	store store.OrderDetailRepository
}

func NewOrderDetailHandler(s store.OrderDetailRepository) *OrderDetailHandler {
	return &OrderDetailHandler{store: s}
}

// Create handles POST /orderdetail. Adding the same product to the same
// order twice violates the composite primary key.
func (h *OrderDetailHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new order detail")
	prometheus.RecordEntityOperation("order_detail", "create")

	var req OrderDetailRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Order detail validation failed", zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	detail := model.OrderDetail{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.store.Create(c.Request().Context(), &detail); err != nil {
		log.Error("Failed to create order detail",
			zap.Uint("order_id", req.OrderID),
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return storeError(c, "Order detail", err)
	}

	log.Info("Order detail created successfully",
		zap.Uint("order_id", detail.OrderID),
		zap.Uint("product_id", detail.ProductID),
		zap.Int("quantity", detail.Quantity))
	return c.JSON(http.StatusCreated, detail)
}

// List handles GET /orderdetails
func (h *OrderDetailHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order_detail", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	details, err := h.store.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve order details", zap.Error(err))
		return storeError(c, "Order detail", err)
	}

	log.Info("Order details retrieved successfully", zap.Int("count", len(details)))
	return c.JSON(http.StatusOK, details)
}

// Delete handles DELETE /orderdetail/:order_id/:product_id
func (h *OrderDetailHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order_detail", "delete")

	orderID, err := parseID(c, "order_id")
	if err != nil {
		log.Error("Invalid order ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid order ID")
	}
	productID, err := parseID(c, "product_id")
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid product ID")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.store.Delete(c.Request().Context(), orderID, productID); err != nil {
		log.Warn("Failed to delete order detail",
			zap.Uint("order_id", orderID),
			zap.Uint("product_id", productID),
			zap.Error(err))
		return storeError(c, "Order detail", err)
	}

	log.Info("Order detail deleted successfully",
		zap.Uint("order_id", orderID),
		zap.Uint("product_id", productID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Order detail deleted successfully",
	})
}
