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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest defines the payload for product creation. Stock defaults
// to 0 and price to 0.00 when omitted, matching the column defaults.
type ProductRequest struct {
	SupplierID uint            `json:"supplier_id"`
	Brand      string          `json:"brand"`
	Model      string          `json:"model"`
	Size       int             `json:"size"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
}

func (r *ProductRequest) Validate() error {
	if r.SupplierID == 0 {
		return errors.New("supplier_id is required")
	}
	if r.Brand == "" {
		return errors.New("brand is required")
	}
	if r.Model == "" {
		return errors.New("model is required")
	}
	if r.Size <= 0 {
		return errors.New("size must be a positive integer")
	}
	if r.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if r.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}

// ProductUpdateRequest carries a partial update; absent fields keep
// their prior value
type ProductUpdateRequest struct {
	SupplierID *uint            `json:"supplier_id"`
	Brand      *string          `json:"brand"`
	Model      *string          `json:"model"`
	Size       *int             `json:"size"`
	Price      *decimal.Decimal `json:"price"`
	Stock      *int             `json:"stock"`
}

func (r *ProductUpdateRequest) Validate() error {
	if r.SupplierID != nil && *r.SupplierID == 0 {
		return errors.New("supplier_id must not be zero")
	}
	if r.Brand != nil && *r.Brand == "" {
		return errors.New("brand must not be empty")
	}
	if r.Model != nil && *r.Model == "" {
		return errors.New("model must not be empty")
	}
	if r.Size != nil && *r.Size <= 0 {
		return errors.New("size must be a positive integer")
	}
	if r.Price != nil && r.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}

func (r *ProductUpdateRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.SupplierID != nil {
		updates["supplier_id"] = *r.SupplierID
	}
	if r.Brand != nil {
		updates["brand"] = *r.Brand
	}
	if r.Model != nil {
		updates["model"] = *r.Model
	}
	if r.Size != nil {
		updates["size"] = *r.Size
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.Stock != nil {
		updates["stock"] = *r.Stock
	}
	return updates
}

// ProductHandler serves the product CRUD endpoints
type ProductHandler struct {
	store store.ProductRepository
}

func NewProductHandler(s store.ProductRepository) *ProductHandler {
	return &ProductHandler{store: s}
}

// Create handles POST /product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")
	prometheus.RecordEntityOperation("product", "create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Product validation failed", zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	product := model.Product{
		SupplierID: req.SupplierID,
		Brand:      req.Brand,
		Model:      req.Model,
		Size:       req.Size,
		Price:      req.Price,
		Stock:      req.Stock,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.store.Create(c.Request().Context(), &product); err != nil {
		log.Error("Failed to create product",
			zap.String("brand", req.Brand),
			zap.String("model", req.Model),
			zap.Uint("supplier_id", req.SupplierID),
			zap.Error(err))
		return storeError(c, "Product", err)
	}

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ProductID),
		zap.String("brand", product.Brand),
		zap.String("model", product.Model))
	return c.JSON(http.StatusCreated, product)
}

// List handles GET /products
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("product", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	products, err := h.store.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve products", zap.Error(err))
		return storeError(c, "Product", err)
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /product/:id
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("product", "get")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid product ID")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	product, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		log.Warn("Product not found", zap.Uint("product_id", id), zap.Error(err))
		return storeError(c, "Product", err)
	}

	log.Info("Product retrieved successfully",
		zap.Uint("product_id", product.ProductID),
		zap.String("brand", product.Brand))
	return c.JSON(http.StatusOK, product)
}

// Update handles PUT /product/:id as a partial update
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("product", "update")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid product ID")
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Product validation failed", zap.Uint("product_id", id), zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	product, err := h.store.Update(c.Request().Context(), id, req.updates())
	if err != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return storeError(c, "Product", err)
	}

	log.Info("Product updated successfully",
		zap.Uint("product_id", product.ProductID),
		zap.Int("stock", product.Stock))
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /product/:id. Products still referenced by order
// line items are rejected by the RESTRICT foreign key.
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("product", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid product ID")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		log.Warn("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return storeError(c, "Product", err)
	}

	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}
