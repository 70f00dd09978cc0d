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

// CustomerRequest defines the payload for customer creation
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (r *CustomerRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Address == "" {
		return errors.New("address is required")
	}
	return nil
}

// CustomerUpdateRequest carries a partial update; absent fields keep
// their prior value
type CustomerUpdateRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

func (r *CustomerUpdateRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return errors.New("name must not be empty")
	}
	if r.Email != nil && *r.Email == "" {
		return errors.New("email must not be empty")
	}
	if r.Address != nil && *r.Address == "" {
		return errors.New("address must not be empty")
	}
	return nil
}

func (r *CustomerUpdateRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.Address != nil {
		updates["address"] = *r.Address
	}
	return updates
}

// CustomerHandler serves the customer CRUD endpoints
type CustomerHandler struct {
	store store.CustomerRepository
}

func NewCustomerHandler(s store.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{store: s}
}

// Create handles POST /customer. Email addresses are unique across all
// customers; a duplicate is rejected and the original stays unmodified.
func (h *CustomerHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new customer")
	prometheus.RecordEntityOperation("customer", "create")

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Customer validation failed", zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	customer := model.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.store.Create(c.Request().Context(), &customer); err != nil {
		log.Error("Failed to create customer",
			zap.String("email", req.Email),
			zap.Error(err))
		return storeError(c, "Customer", err)
	}

	log.Info("Customer created successfully",
		zap.Uint("customer_id", customer.CustomerID),
		zap.String("email", customer.Email))
	return c.JSON(http.StatusCreated, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("customer", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	customers, err := h.store.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve customers", zap.Error(err))
		return storeError(c, "Customer", err)
	}

	log.Info("Customers retrieved successfully", zap.Int("count", len(customers)))
	return c.JSON(http.StatusOK, customers)
}

// Get handles GET /customer/:id, expanding the customer's orders
func (h *CustomerHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("customer", "get")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid customer ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid customer ID")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	customer, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		log.Warn("Customer not found", zap.Uint("customer_id", id), zap.Error(err))
		return storeError(c, "Customer", err)
	}

	log.Info("Customer retrieved successfully",
		zap.Uint("customer_id", customer.CustomerID),
		zap.String("email", customer.Email))
	return c.JSON(http.StatusOK, customer)
}

// Update handles PUT /customer/:id as a partial update
func (h *CustomerHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("customer", "update")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid customer ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid customer ID")
	}

	var req CustomerUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("customer_id", id), zap.Error(err))
		return badRequest(c, codeValidation, "Invalid request data")
	}
	if err := req.Validate(); err != nil {
		log.Warn("Customer validation failed", zap.Uint("customer_id", id), zap.Error(err))
		return badRequest(c, codeValidation, err.Error())
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	customer, err := h.store.Update(c.Request().Context(), id, req.updates())
	if err != nil {
		log.Error("Failed to update customer", zap.Uint("customer_id", id), zap.Error(err))
		return storeError(c, "Customer", err)
	}

	log.Info("Customer updated successfully",
		zap.Uint("customer_id", customer.CustomerID),
		zap.String("email", customer.Email))
	return c.JSON(http.StatusOK, customer)
}

// Delete handles DELETE /customer/:id. Customers with orders are rejected
// by the RESTRICT foreign key.
func (h *CustomerHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("customer", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		log.Error("Invalid customer ID", zap.Error(err))
		return badRequest(c, codeValidation, "Invalid customer ID")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		log.Warn("Failed to delete customer", zap.Uint("customer_id", id), zap.Error(err))
		return storeError(c, "Customer", err)
	}

	log.Info("Customer deleted successfully", zap.Uint("customer_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Customer deleted successfully",
	})
}
