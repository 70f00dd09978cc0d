// Package store is the persistence layer: one repository per entity backed
// by a shared GORM handle. Driver-level constraint errors never escape;
// they are translated to the sentinel errors below so handlers can map
// them to responses without knowing about SQLSTATEs.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrForeignKey is returned when a referenced record does not exist,
	// or when a delete is rejected because dependent records still exist.
	ErrForeignKey = errors.New("foreign key constraint violated")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("unique constraint violated")
)

// PostgreSQL SQLSTATE codes for constraint failures.
const (
	pgFKViolation     = "23503"
	pgUniqueViolation = "23505"
)

// Store bundles the per-entity repositories over one database handle.
// Handlers receive the interfaces, tests substitute in-memory stubs.
type Store struct {
	Suppliers    SupplierRepository
	Products     ProductRepository
	Customers    CustomerRepository
	Orders       OrderRepository
	OrderDetails OrderDetailRepository
	Shipments    ShipmentRepository
}

// New builds a Store backed by the given GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{
		Suppliers:    &supplierStore{db: db},
		Products:     &productStore{db: db},
		Customers:    &customerStore{db: db},
		Orders:       &orderStore{db: db},
		OrderDetails: &orderDetailStore{db: db},
		Shipments:    &shipmentStore{db: db},
	}
}

// translate maps GORM and driver errors onto the store sentinel errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgFKViolation:
			return ErrForeignKey
		case pgUniqueViolation:
			return ErrDuplicate
		}
	}
	return err
}
