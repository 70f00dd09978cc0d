package handler

import (
	"net/http"
	"testing"
)

// seedOrderAndProduct creates supplier 1, product 2, customer 3, order 4.
func seedOrderAndProduct(t *testing.T, f *fixture) {
	t.Helper()
	seedSupplier(t, f)
	f.do(t, http.MethodPost, "/product", `{"supplier_id":1,"brand":"Nike","model":"Air Max 90","size":42,"price":120.00,"stock":10}`)
	seedCustomer(t, f)
	f.do(t, http.MethodPost, "/order", `{"customer_id":3,"order_date":"2025-10-30"}`)
}

func TestCreateOrderDetailThenList(t *testing.T) {
	f := newTestServer()
	seedOrderAndProduct(t, f)

	rec := f.do(t, http.MethodPost, "/orderdetail", `{"order_id":4,"product_id":2,"quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode(t, rec)
	if created["quantity"] != float64(2) {
		t.Fatalf("expected quantity 2, got %v", created["quantity"])
	}

	rec = f.do(t, http.MethodGet, "/orderdetails", "")
	got := decodeList(t, rec)
	if len(got) != 1 {
		t.Fatalf("expected one order detail, got %d", len(got))
	}
	if got[0]["order_id"] != float64(4) || got[0]["product_id"] != float64(2) {
		t.Fatalf("composite key mismatch: %v", got[0])
	}
}

func TestCreateOrderDetailDuplicateKey(t *testing.T) {
	f := newTestServer()
	seedOrderAndProduct(t, f)
	f.do(t, http.MethodPost, "/orderdetail", `{"order_id":4,"product_id":2,"quantity":2}`)

	rec := f.do(t, http.MethodPost, "/orderdetail", `{"order_id":4,"product_id":2,"quantity":5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decode(t, rec); body["code"] != "unique_violation" {
		t.Fatalf("expected unique_violation, got %v", body["code"])
	}
}

func TestCreateOrderDetailUnknownProduct(t *testing.T) {
	f := newTestServer()
	seedOrderAndProduct(t, f)

	rec := f.do(t, http.MethodPost, "/orderdetail", `{"order_id":4,"product_id":99,"quantity":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decode(t, rec); body["code"] != "foreign_key_violation" {
		t.Fatalf("expected foreign_key_violation, got %v", body["code"])
	}
}

func TestCreateOrderDetailNonPositiveQuantity(t *testing.T) {
	f := newTestServer()
	seedOrderAndProduct(t, f)

	rec := f.do(t, http.MethodPost, "/orderdetail", `{"order_id":4,"product_id":2,"quantity":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decode(t, rec); body["code"] != "validation_error" {
		t.Fatalf("expected validation_error, got %v", body["code"])
	}
}

func TestDeleteOrderDetailByCompositeKey(t *testing.T) {
	f := newTestServer()
	seedOrderAndProduct(t, f)
	f.do(t, http.MethodPost, "/orderdetail", `{"order_id":4,"product_id":2,"quantity":2}`)

	rec := f.do(t, http.MethodDelete, "/orderdetail/4/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first delete: expected 200, got %d", rec.Code)
	}
	rec = f.do(t, http.MethodDelete, "/orderdetail/4/2", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}
