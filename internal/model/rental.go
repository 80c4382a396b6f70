package model

import (
    "math"
    "time"
)

// Rental represents a row in the `rental` table. Duration is derived, not
// stored: the number of started days between rental and return, or nil
// while the item is still out.
//
// Fields:
//  RentalID    – primary key identifier.
//  InventoryID – the rented copy.
//  CustomerID  – the renting customer.
//  ReturnDate  – when the copy came back (nil if not yet returned).
//  StaffID     – staff member who processed the rental.
type Rental struct {
    RentalID    int64      `json:"rental_id"`    // rental.rental_id
    RentalDate  time.Time  `json:"rental_date"`  // rental.rental_date
    InventoryID int64      `json:"inventory_id"` // rental.inventory_id
    CustomerID  int64      `json:"customer_id"`  // rental.customer_id
    ReturnDate  *time.Time `json:"return_date"`  // rental.return_date
    StaffID     int64      `json:"staff_id"`     // rental.staff_id
    LastUpdate  time.Time  `json:"last_update"`  // rental.last_update
    Duration    *int64     `json:"duration"`

    Inventory *Inventory `json:"inventory,omitempty"`
    Customer  *Customer  `json:"customer,omitempty"`
    Payments  []Payment  `json:"payment"`
}

// RentalDuration returns ceil((returned-rented) / 24h), or nil when the
// rental has not been returned.
func RentalDuration(rented time.Time, returned *time.Time) *int64 {
    if returned == nil {
        return nil
    }
    days := int64(math.Ceil(float64(returned.Sub(rented)) / float64(24*time.Hour)))
    return &days
}

// Inventory represents a row in the `inventory` table: one physical copy of
// a film held by a store.
type Inventory struct {
    InventoryID int64  `json:"inventory_id"` // inventory.inventory_id
    FilmID      int64  `json:"film_id"`      // inventory.film_id
    StoreID     int64  `json:"store_id"`     // inventory.store_id
    Film        *Film  `json:"film,omitempty"`
    Store       *Store `json:"store,omitempty"`
}

// Payment represents a row in the `payment` table.
type Payment struct {
    PaymentID   int64     `json:"payment_id"`   // payment.payment_id
    CustomerID  int64     `json:"customer_id"`  // payment.customer_id
    StaffID     int64     `json:"staff_id"`     // payment.staff_id
    RentalID    int64     `json:"rental_id"`    // payment.rental_id
    Amount      float64   `json:"amount"`       // payment.amount
    PaymentDate time.Time `json:"payment_date"` // payment.payment_date
}

// RentalFilterOptions feeds the client-side rental filter widgets.
type RentalFilterOptions struct {
    Stores    []StoreOption    `json:"stores"`
    Customers []CustomerOption `json:"customers"`
    Films     []FilmOption     `json:"films"`
}
