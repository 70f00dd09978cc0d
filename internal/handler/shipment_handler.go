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

// ShipmentRequest defines the payload for shipment creation. Courier and
// status fall back to their defaults when omitted.
type ShipmentRequest struct {
	OrderID uint   `json:"order_id"`
	Courier string `json:"courier"`
	Status  string `json:"status"`
}

func (r *ShipmentRequest) Validate() error {
	if r.OrderID == 0 {
		return errors.New("order_id is required")
	}
	return nil
}

// ShipmentUpdateRequest carries a partial update; absent fields keep
// their prior value. The order an existing shipment belongs to is fixed.
type ShipmentUpdateRequest struct {
	Courier *string `json:"courier"`
	Status  *string `json:"status"`
}

func (r *ShipmentUpdateRequest) Validate() error {
	if r.Courier != nil && *r.Courier == "" {
		return errors.New("courier must not be empty")
	}
	if r.Status != nil && *r.Status == "" {
		return errors.New("status must not be empty")
	}
	return nil
}

func (r *ShipmentUpdateRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Courier != nil {
		updates["courier"] = *r.Courier
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	return updates
}

// ShipmentHandler serves the shipment endpoints
type ShipmentHandler struct {
	store store.ShipmentRepository
}

func NewShipmentHandler(s store.ShipmentRepository) *ShipmentHandler {
	return &ShipmentHandler{store: s}
}

// Create handles POST /shipment
func (h *ShipmentHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new shipment")
	prometheus.RecordEntityOperation("shipment", "create")

	var req ShipmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Shipment validation failed", zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	if req.Courier == "" {
		req.Courier = model.DefaultCourier
	}
	if req.Status == "" {
		req.Status = model.DefaultShipmentStatus
	}

	shipment := model.Shipment{
		OrderID: req.OrderID,
		Courier: req.Courier,
		Status:  req.Status,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.store.Create(c.Request().Context(), &shipment); err != nil {
		log.Error("Failed to create shipment",
			zap.Uint("order_id", req.OrderID),
			zap.Error(err))
		return storeError(c, "Shipment", err)
	}

	log.Info("Shipment created successfully",
		zap.Uint("shipment_id", shipment.ShipmentID),
		zap.Uint("order_id", shipment.OrderID),
		zap.String("courier", shipment.Courier))
	return c.JSON(http.StatusCreated, shipment)
}

// List handles GET /shipments
func (h *ShipmentHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("shipment", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	shipments, err := h.store.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve shipments", zap.Error(err))
		return storeError(c, "Shipment", err)
	}

	log.Info("Shipments retrieved successfully", zap.Int("count", len(shipments)))
	return c.JSON(http.StatusOK, shipments)
}

// Update handles PUT /shipment/:id as a partial update
func (h *ShipmentHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("shipment", "update")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid shipment ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid shipment ID")
	}

	var req ShipmentUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("shipment_id", id), zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Shipment validation failed", zap.Uint("shipment_id", id), zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	shipment, err := h.store.Update(c.Request().Context(), id, req.updates())
	if err != nil {
		log.Error("Failed to update shipment", zap.Uint("shipment_id", id), zap.Error(err))
		return storeError(c, "Shipment", err)
	}

	log.Info("Shipment updated successfully",
		zap.Uint("shipment_id", shipment.ShipmentID),
		zap.String("status", shipment.Status))
	return c.JSON(http.StatusOK, shipment)
}

// Delete handles DELETE /shipment/:id
func (h *ShipmentHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("shipment", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid shipment ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid shipment ID")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		log.Warn("Failed to delete shipment", zap.Uint("shipment_id", id), zap.Error(err))
		return storeError(c, "Shipment", err)
	}

	log.Info("Shipment deleted successfully", zap.Uint("shipment_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Shipment deleted successfully",
	})
}
