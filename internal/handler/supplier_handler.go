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

// SupplierRequest defines the payload for supplier creation
type SupplierRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

func (r *SupplierRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Country == "" {
		return errors.New("country is required")
	}
	return nil
}

// SupplierUpdateRequest carries a partial update; absent fields keep
// their prior value
type SupplierUpdateRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
}

func (r *SupplierUpdateRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return errors.New("name must not be empty")
	}
	if r.Country != nil && *r.Country == "" {
		return errors.New("country must not be empty")
	}
	return nil
}

func (r *SupplierUpdateRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Country != nil {
		updates["country"] = *r.Country
	}
	return updates
}

// SupplierHandler serves the supplier CRUD endpoints
type SupplierHandler struct {
	store store.SupplierRepository
}

func NewSupplierHandler(s store.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{store: s}
}

// Create handles POST /supplier
func (h *SupplierHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new supplier")
	prometheus.RecordEntityOperation("supplier", "create")

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Supplier validation failed", zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	supplier := model.Supplier{
		Name:    req.Name,
		Country: req.Country,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.store.Create(c.Request().Context(), &supplier); err != nil {
		log.Error("Failed to create supplier",
			zap.String("name", req.Name),
			zap.Error(err))
		return storeError(c, "Supplier", err)
	}

	log.Info("Supplier created successfully",
		zap.Uint("supplier_id", supplier.SupplierID),
		zap.String("name", supplier.Name),
		zap.String("country", supplier.Country))
	return c.JSON(http.StatusCreated, supplier)
}

// List handles GET /suppliers
func (h *SupplierHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("supplier", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	suppliers, err := h.store.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve suppliers", zap.Error(err))
		return storeError(c, "Supplier", err)
	}

	log.Info("Suppliers retrieved successfully", zap.Int("count", len(suppliers)))
	return c.JSON(http.StatusOK, suppliers)
}

// Get handles GET /supplier/:id, expanding the supplier's products
func (h *SupplierHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("supplier", "get")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid supplier ID")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	supplier, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		log.Warn("Supplier not found", zap.Uint("supplier_id", id), zap.Error(err))
		return storeError(c, "Supplier", err)
	}

	log.Info("Supplier retrieved successfully",
		zap.Uint("supplier_id", supplier.SupplierID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// Update handles PUT /supplier/:id as a partial update
func (h *SupplierHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("supplier", "update")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid supplier ID")
	}

	var req SupplierUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("supplier_id", id), zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Supplier validation failed", zap.Uint("supplier_id", id), zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	supplier, err := h.store.Update(c.Request().Context(), id, req.updates())
	if err != nil {
		log.Error("Failed to update supplier", zap.Uint("supplier_id", id), zap.Error(err))
		return storeError(c, "Supplier", err)
	}

	log.Info("Supplier updated successfully",
		zap.Uint("supplier_id", supplier.SupplierID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// Delete handles DELETE /supplier/:id. Suppliers that still have products
// are rejected by the RESTRICT foreign key.
func (h *SupplierHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("supplier", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid supplier ID")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		log.Warn("Failed to delete supplier", zap.Uint("supplier_id", id), zap.Error(err))
		return storeError(c, "Supplier", err)
	}

	log.Info("Supplier deleted successfully", zap.Uint("supplier_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Supplier deleted successfully",
	})
}
