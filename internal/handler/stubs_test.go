package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"shoestore-service/internal/model"
	"shoestore-service/internal/store"
	"shoestore-service/pkg/config"
	"shoestore-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

//
// ===== IN-MEMORY STUB STORES (implement the store repositories) =====
//

// stubDB holds all six tables in maps and mimics the relational
// constraints: foreign keys, the unique customer email, the composite
// line-item key and RESTRICT on deletes with dependents.
type stubDB struct {
	suppliers map[uint]*model.Supplier
	products  map[uint]*model.Product
	customers map[uint]*model.Customer
	orders    map[uint]*model.Order
	details   map[[2]uint]*model.OrderDetail
	shipments map[uint]*model.Shipment
	nextID    uint
}

func newStubDB() *stubDB {
	return &stubDB{
		suppliers: make(map[uint]*model.Supplier),
		products:  make(map[uint]*model.Product),
		customers: make(map[uint]*model.Customer),
		orders:    make(map[uint]*model.Order),
		details:   make(map[[2]uint]*model.OrderDetail),
		shipments: make(map[uint]*model.Shipment),
	}
}

func (db *stubDB) nextSeq() uint {
	db.nextID++
	return db.nextID
}

// productsOf and ordersOf expand a relation the way the real stores
// preload it: always a non-nil slice.
func (db *stubDB) productsOf(supplierID uint) []model.Product {
	out := []model.Product{}
	for _, p := range db.products {
		if p.SupplierID == supplierID {
			out = append(out, *p)
		}
	}
	return out
}

func (db *stubDB) ordersOf(customerID uint) []model.Order {
	out := []model.Order{}
	for _, o := range db.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out
}

type stubSupplierStore struct{ db *stubDB }

func (s *stubSupplierStore) Create(_ context.Context, supplier *model.Supplier) error {
	supplier.SupplierID = s.db.nextSeq()
	cp := *supplier
	s.db.suppliers[supplier.SupplierID] = &cp
	supplier.Products = []model.Product{}
	return nil
}

func (s *stubSupplierStore) List(_ context.Context) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(s.db.suppliers))
	for _, v := range s.db.suppliers {
		cp := *v
		cp.Products = s.db.productsOf(cp.SupplierID)
		out = append(out, cp)
	}
	return out, nil
}

func (s *stubSupplierStore) Get(_ context.Context, id uint) (*model.Supplier, error) {
	sup, ok := s.db.suppliers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *sup
	cp.Products = s.db.productsOf(id)
	return &cp, nil
}

func (s *stubSupplierStore) Update(_ context.Context, id uint, updates map[string]interface{}) (*model.Supplier, error) {
	sup, ok := s.db.suppliers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			sup.Name = v.(string)
		case "country":
			sup.Country = v.(string)
		}
	}
	cp := *sup
	cp.Products = s.db.productsOf(id)
	return &cp, nil
}

func (s *stubSupplierStore) Delete(_ context.Context, id uint) error {
	if _, ok := s.db.suppliers[id]; !ok {
		return store.ErrNotFound
	}
	for _, p := range s.db.products {
		if p.SupplierID == id {
			return store.ErrForeignKey
		}
	}
	delete(s.db.suppliers, id)
	return nil
}

type stubProductStore struct{ db *stubDB }

func (s *stubProductStore) Create(_ context.Context, product *model.Product) error {
	if _, ok := s.db.suppliers[product.SupplierID]; !ok {
		return store.ErrForeignKey
	}
	product.ProductID = s.db.nextSeq()
	cp := *product
	s.db.products[product.ProductID] = &cp
	return nil
}

func (s *stubProductStore) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(s.db.products))
	for _, v := range s.db.products {
		out = append(out, *v)
	}
	return out, nil
}

func (s *stubProductStore) Get(_ context.Context, id uint) (*model.Product, error) {
	p, ok := s.db.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductStore) Update(_ context.Context, id uint, updates map[string]interface{}) (*model.Product, error) {
	p, ok := s.db.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "supplier_id":
			sid := v.(uint)
			if _, ok := s.db.suppliers[sid]; !ok {
				return nil, store.ErrForeignKey
			}
			p.SupplierID = sid
		case "brand":
			p.Brand = v.(string)
		case "model":
			p.Model = v.(string)
		case "size":
			p.Size = v.(int)
		case "price":
			p.Price = v.(decimal.Decimal)
		case "stock":
			p.Stock = v.(int)
		}
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductStore) Delete(_ context.Context, id uint) error {
	if _, ok := s.db.products[id]; !ok {
		return store.ErrNotFound
	}
	for key := range s.db.details {
		if key[1] == id {
			return store.ErrForeignKey
		}
	}
	delete(s.db.products, id)
	return nil
}

type stubCustomerStore struct{ db *stubDB }

func (s *stubCustomerStore) Create(_ context.Context, customer *model.Customer) error {
	for _, c := range s.db.customers {
		if c.Email == customer.Email {
			return store.ErrDuplicate
		}
	}
	customer.CustomerID = s.db.nextSeq()
	cp := *customer
	s.db.customers[customer.CustomerID] = &cp
	customer.Orders = []model.Order{}
	return nil
}

func (s *stubCustomerStore) List(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(s.db.customers))
	for _, v := range s.db.customers {
		cp := *v
		cp.Orders = s.db.ordersOf(cp.CustomerID)
		out = append(out, cp)
	}
	return out, nil
}

func (s *stubCustomerStore) Get(_ context.Context, id uint) (*model.Customer, error) {
	c, ok := s.db.customers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	cp.Orders = s.db.ordersOf(id)
	return &cp, nil
}

func (s *stubCustomerStore) Update(_ context.Context, id uint, updates map[string]interface{}) (*model.Customer, error) {
	c, ok := s.db.customers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			c.Name = v.(string)
		case "email":
			email := v.(string)
			for otherID, other := range s.db.customers {
				if otherID != id && other.Email == email {
					return nil, store.ErrDuplicate
				}
			}
			c.Email = email
		case "address":
			c.Address = v.(string)
		}
	}
	cp := *c
	cp.Orders = s.db.ordersOf(id)
	return &cp, nil
}

func (s *stubCustomerStore) Delete(_ context.Context, id uint) error {
	if _, ok := s.db.customers[id]; !ok {
		return store.ErrNotFound
	}
	for _, o := range s.db.orders {
		if o.CustomerID == id {
			return store.ErrForeignKey
		}
	}
	delete(s.db.customers, id)
	return nil
}

type stubOrderStore struct{ db *stubDB }

func (s *stubOrderStore) Create(_ context.Context, order *model.Order) error {
	if _, ok := s.db.customers[order.CustomerID]; !ok {
		return store.ErrForeignKey
	}
	order.OrderID = s.db.nextSeq()
	cp := *order
	s.db.orders[order.OrderID] = &cp
	return nil
}

func (s *stubOrderStore) List(_ context.Context) ([]model.Order, error) {
	out := make([]model.Order, 0, len(s.db.orders))
	for _, v := range s.db.orders {
		out = append(out, *v)
	}
	return out, nil
}

func (s *stubOrderStore) Get(_ context.Context, id uint) (*model.Order, error) {
	o, ok := s.db.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderStore) Update(_ context.Context, id uint, updates map[string]interface{}) (*model.Order, error) {
	o, ok := s.db.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "customer_id":
			cid := v.(uint)
			if _, ok := s.db.customers[cid]; !ok {
				return nil, store.ErrForeignKey
			}
			o.CustomerID = cid
		case "order_date":
			o.OrderDate = v.(model.Date)
		}
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderStore) Delete(_ context.Context, id uint) error {
	if _, ok := s.db.orders[id]; !ok {
		return store.ErrNotFound
	}
	for key := range s.db.details {
		if key[0] == id {
			return store.ErrForeignKey
		}
	}
	for _, sh := range s.db.shipments {
		if sh.OrderID == id {
			return store.ErrForeignKey
		}
	}
	delete(s.db.orders, id)
	return nil
}

type stubOrderDetailStore struct{ db *stubDB }

func (s *stubOrderDetailStore) Create(_ context.Context, detail *model.OrderDetail) error {
	if _, ok := s.db.orders[detail.OrderID]; !ok {
		return store.ErrForeignKey
	}
	if _, ok := s.db.products[detail.ProductID]; !ok {
		return store.ErrForeignKey
	}
	key := [2]uint{detail.OrderID, detail.ProductID}
	if _, ok := s.db.details[key]; ok {
		return store.ErrDuplicate
	}
	cp := *detail
	s.db.details[key] = &cp
	return nil
}

func (s *stubOrderDetailStore) List(_ context.Context) ([]model.OrderDetail, error) {
	out := make([]model.OrderDetail, 0, len(s.db.details))
	for _, v := range s.db.details {
		out = append(out, *v)
	}
	return out, nil
}

func (s *stubOrderDetailStore) Delete(_ context.Context, orderID, productID uint) error {
	key := [2]uint{orderID, productID}
	if _, ok := s.db.details[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.details, key)
	return nil
}

type stubShipmentStore struct{ db *stubDB }

func (s *stubShipmentStore) Create(_ context.Context, shipment *model.Shipment) error {
	if _, ok := s.db.orders[shipment.OrderID]; !ok {
		return store.ErrForeignKey
	}
	shipment.ShipmentID = s.db.nextSeq()
	cp := *shipment
	s.db.shipments[shipment.ShipmentID] = &cp
	return nil
}

func (s *stubShipmentStore) List(_ context.Context) ([]model.Shipment, error) {
	out := make([]model.Shipment, 0, len(s.db.shipments))
	for _, v := range s.db.shipments {
		out = append(out, *v)
	}
	return out, nil
}

func (s *stubShipmentStore) Update(_ context.Context, id uint, updates map[string]interface{}) (*model.Shipment, error) {
	sh, ok := s.db.shipments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "courier":
			sh.Courier = v.(string)
		case "status":
			sh.Status = v.(string)
		}
	}
	cp := *sh
	return &cp, nil
}

func (s *stubShipmentStore) Delete(_ context.Context, id uint) error {
	if _, ok := s.db.shipments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.shipments, id)
	return nil
}

//
// ===== TEST SERVER wired with the same routes as cmd/main.go =====
//

type fixture struct {
	db *stubDB
	e  *echo.Echo
}

func newTestServer() *fixture {
	db := newStubDB()
	e := echo.New()

	suppliers := NewSupplierHandler(&stubSupplierStore{db})
	products := NewProductHandler(&stubProductStore{db})
	customers := NewCustomerHandler(&stubCustomerStore{db})
	orders := NewOrderHandler(&stubOrderStore{db})
	orderDetails := NewOrderDetailHandler(&stubOrderDetailStore{db})
	shipments := NewShipmentHandler(&stubShipmentStore{db})

	e.POST("/supplier", suppliers.Create)
	e.GET("/suppliers", suppliers.List)
	e.GET("/supplier/:id", suppliers.Get)
	e.PUT("/supplier/:id", suppliers.Update)
	e.DELETE("/supplier/:id", suppliers.Delete)

	e.POST("/product", products.Create)
	e.GET("/products", products.List)
	e.GET("/product/:id", products.Get)
	e.PUT("/product/:id", products.Update)
	e.DELETE("/product/:id", products.Delete)

	e.POST("/customer", customers.Create)
	e.GET("/customers", customers.List)
	e.GET("/customer/:id", customers.Get)
	e.PUT("/customer/:id", customers.Update)
	e.DELETE("/customer/:id", customers.Delete)

	e.POST("/order", orders.Create)
	e.GET("/orders", orders.List)
	e.GET("/order/:id", orders.Get)
	e.PUT("/order/:id", orders.Update)
	e.DELETE("/order/:id", orders.Delete)

	e.POST("/orderdetail", orderDetails.Create)
	e.GET("/orderdetails", orderDetails.List)
	e.DELETE("/orderdetail/:order_id/:product_id", orderDetails.Delete)

	e.POST("/shipment", shipments.Create)
	e.GET("/shipments", shipments.List)
	e.PUT("/shipment/:id", shipments.Update)
	e.DELETE("/shipment/:id", shipments.Delete)

	return &fixture{db: db, e: e}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
