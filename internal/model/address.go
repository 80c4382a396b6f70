package model

// Address represents a row in the `address` table with its city and
// country resolved.
type Address struct {
    AddressID  int64   `json:"address_id"`  // address.address_id
    Address    string  `json:"address"`     // address.address
    Address2   *string `json:"address2"`    // address.address2
    District   string  `json:"district"`    // address.district
    PostalCode *string `json:"postal_code"` // address.postal_code
    Phone      string  `json:"phone"`       // address.phone
    City       *City   `json:"city,omitempty"`
}

// City represents a row in the `city` table.
type City struct {
    CityID  int64    `json:"city_id"` // city.city_id
    City    string   `json:"city"`    // city.city
    Country *Country `json:"country,omitempty"`
}

// Country represents a row in the `country` table.
type Country struct {
    CountryID int64  `json:"country_id"` // country.country_id
    Country   string `json:"country"`    // country.country
}
