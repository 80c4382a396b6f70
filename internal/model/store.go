package model

import "time"

// Store represents a row in the `store` table. StaffCount and RentalCount
// are derived and only populated on store endpoints.
type Store struct {
    StoreID        int64     `json:"store_id"`         // store.store_id
    ManagerStaffID int64     `json:"manager_staff_id"` // store.manager_staff_id
    AddressID      int64     `json:"address_id"`       // store.address_id
    LastUpdate     time.Time `json:"last_update"`      // store.last_update
    StaffCount     *int64    `json:"staff_count,omitempty"`
    RentalCount    *int64    `json:"rental_count,omitempty"`

    Address *Address `json:"address,omitempty"`
    Staff   []Staff  `json:"staff,omitempty"`
}

// StoreOption labels a store by its street address and city.
type StoreOption struct {
    StoreID int64  `json:"store_id"`
    Name    string `json:"name"`
}

// Staff represents a row in the `staff` table. The password and picture
// columns are never selected.
type Staff struct {
    StaffID   int64    `json:"staff_id"`   // staff.staff_id
    FirstName string   `json:"first_name"` // staff.first_name
    LastName  string   `json:"last_name"`  // staff.last_name
    Email     *string  `json:"email"`      // staff.email
    Username  string   `json:"username"`   // staff.username
    Active    bool     `json:"active"`     // staff.active
    StoreID   int64    `json:"store_id"`   // staff.store_id
    AddressID int64    `json:"address_id"` // staff.address_id
    Address   *Address `json:"address,omitempty"`
}

// Customer represents a row in the `customer` table.
type Customer struct {
    CustomerID int64    `json:"customer_id"` // customer.customer_id
    StoreID    int64    `json:"store_id"`    // customer.store_id
    FirstName  string   `json:"first_name"`  // customer.first_name
    LastName   string   `json:"last_name"`   // customer.last_name
    Email      *string  `json:"email"`       // customer.email
    Active     bool     `json:"active"`      // customer.active
    AddressID  int64    `json:"address_id"`  // customer.address_id
    Address    *Address `json:"address,omitempty"`
}

// CustomerOption labels a customer by full name.
type CustomerOption struct {
    CustomerID int64  `json:"customer_id"`
    Name       string `json:"name"`
}
