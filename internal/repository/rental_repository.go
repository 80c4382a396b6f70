package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/iliyamo/film-rental-api/internal/model"
	"github.com/iliyamo/film-rental-api/internal/query"
)

// RentalSortFields are the sort_field values accepted by the rental list.
var RentalSortFields = query.SortFields{
	"rental_id":    "r.rental_id",
	"rental_date":  "r.rental_date",
	"return_date":  "r.return_date",
	"customer_id":  "r.customer_id",
	"staff_id":     "r.staff_id",
	"inventory_id": "r.inventory_id",
	"last_update":  "r.last_update",
}

// RentalRepo reads rentals together with the rented copy (film and store),
// the customer and the payments.
type RentalRepo struct {
	db *sql.DB
}

// NewRentalRepo constructs a RentalRepo with the provided DB handle.
func NewRentalRepo(db *sql.DB) *RentalRepo {
	return &RentalRepo{db: db}
}

// RentalWhere turns a rental filter into AND-ed SQL conditions on aliases
// r (rental) and i (inventory).
func RentalWhere(f query.RentalFilter) sq.And {
	conds := sq.And{}
	if f.Start != nil {
		conds = append(conds, sq.GtOrEq{"r.rental_date": *f.Start})
	}
	if f.End != nil {
		conds = append(conds, sq.LtOrEq{"r.rental_date": *f.End})
	}
	if f.StoreID != nil {
		conds = append(conds, sq.Eq{"i.store_id": *f.StoreID})
	}
	if f.CustomerID != nil {
		conds = append(conds, sq.Eq{"r.customer_id": *f.CustomerID})
	}
	if f.FilmID != nil {
		conds = append(conds, sq.Eq{"i.film_id": *f.FilmID})
	}
	return conds
}

var rentalColumns = []string{
	"r.rental_id", "r.rental_date", "r.inventory_id", "r.customer_id",
	"r.return_date", "r.staff_id", "r.last_update",
	"i.inventory_id", "i.film_id", "i.store_id",
}

var storeColumns = []string{"s.store_id", "s.manager_staff_id", "s.address_id", "s.last_update"}

var customerColumns = []string{
	"c.customer_id", "c.store_id", "c.first_name", "c.last_name",
	"c.email", "c.active", "c.address_id",
}

func (r *RentalRepo) selectRentals() sq.SelectBuilder {
	var cols []string
	cols = append(cols, rentalColumns...)
	cols = append(cols, filmColumns...)
	cols = append(cols, storeColumns...)
	cols = append(cols, addressColumns("sa", "sci", "sco")...)
	cols = append(cols, customerColumns...)
	cols = append(cols, addressColumns("ca", "cci", "cco")...)

	sb := psql.Select(cols...).
		From("rental r").
		Join("inventory i ON i.inventory_id = r.inventory_id").
		Join("film f ON f.film_id = i.film_id").
		Join("store s ON s.store_id = i.store_id")
	sb = addressJoins(sb, "s.address_id", "sa", "sci", "sco")
	sb = sb.Join("customer c ON c.customer_id = r.customer_id")
	return addressJoins(sb, "c.address_id", "ca", "cci", "cco")
}

func scanRental(row rowScanner) (model.Rental, error) {
	rt := model.Rental{
		Inventory: &model.Inventory{
			Film:  &model.Film{},
			Store: &model.Store{Address: newAddress()},
		},
		Customer: &model.Customer{Address: newAddress()},
		Payments: []model.Payment{},
	}
	inv, st, cu := rt.Inventory, rt.Inventory.Store, rt.Customer

	var dest []any
	dest = append(dest,
		&rt.RentalID, &rt.RentalDate, &rt.InventoryID, &rt.CustomerID,
		&rt.ReturnDate, &rt.StaffID, &rt.LastUpdate,
		&inv.InventoryID, &inv.FilmID, &inv.StoreID,
	)
	dest = append(dest, filmDest(inv.Film)...)
	dest = append(dest, &st.StoreID, &st.ManagerStaffID, &st.AddressID, &st.LastUpdate)
	dest = append(dest, addressDest(st.Address)...)
	dest = append(dest,
		&cu.CustomerID, &cu.StoreID, &cu.FirstName, &cu.LastName,
		&cu.Email, &cu.Active, &cu.AddressID,
	)
	dest = append(dest, addressDest(cu.Address)...)

	if err := row.Scan(dest...); err != nil {
		return model.Rental{}, err
	}
	rt.Duration = model.RentalDuration(rt.RentalDate, rt.ReturnDate)
	return rt, nil
}

// List returns one page of rentals matching the filter and the total number
// of matches. Each rental carries its derived duration.
func (r *RentalRepo) List(ctx context.Context, f query.RentalFilter, s *query.Sort, p query.Page) ([]model.Rental, int64, error) {
	conds := RentalWhere(f)

	countSQL := psql.Select("COUNT(*)").
		From("rental r").
		Join("inventory i ON i.inventory_id = r.inventory_id")
	total, err := count(ctx, r.db, where(countSQL, conds))
	if err != nil {
		return nil, 0, fmt.Errorf("count rentals: %w", err)
	}

	sb := where(r.selectRentals(), conds).
		OrderBy(query.OrderBy(s, "r.rental_id")...).
		Limit(p.Take()).
		Offset(p.Offset())

	rentals := make([]model.Rental, 0, min(p.Limit, 100))
	err = queryEach(ctx, r.db, sb, func(row rowScanner) error {
		rt, err := scanRental(row)
		if err != nil {
			return err
		}
		rentals = append(rentals, rt)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list rentals: %w", err)
	}
	if err := r.attachPayments(ctx, rentals); err != nil {
		return nil, 0, err
	}
	return rentals, total, nil
}

// GetByID fetches one rental with its relations. It returns
// ErrRentalNotFound if no row matches.
func (r *RentalRepo) GetByID(ctx context.Context, id int64) (*model.Rental, error) {
	q, args, err := r.selectRentals().Where(sq.Eq{"r.rental_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rental query: %w", err)
	}
	rt, err := scanRental(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRentalNotFound
		}
		return nil, fmt.Errorf("get rental %d: %w", id, err)
	}
	rentals := []model.Rental{rt}
	if err := r.attachPayments(ctx, rentals); err != nil {
		return nil, err
	}
	return &rentals[0], nil
}

func (r *RentalRepo) attachPayments(ctx context.Context, rentals []model.Rental) error {
	if len(rentals) == 0 {
		return nil
	}
	ids := make([]int64, len(rentals))
	index := make(map[int64]int, len(rentals))
	for i, rt := range rentals {
		ids[i] = rt.RentalID
		index[rt.RentalID] = i
	}
	sb := psql.Select("p.payment_id", "p.customer_id", "p.staff_id", "p.rental_id", "p.amount", "p.payment_date").
		From("payment p").
		Where(sq.Eq{"p.rental_id": ids}).
		OrderBy("p.payment_date ASC", "p.payment_id ASC")
	err := queryEach(ctx, r.db, sb, func(row rowScanner) error {
		var p model.Payment
		if err := row.Scan(&p.PaymentID, &p.CustomerID, &p.StaffID, &p.RentalID, &p.Amount, &p.PaymentDate); err != nil {
			return err
		}
		if i, ok := index[p.RentalID]; ok {
			rentals[i].Payments = append(rentals[i].Payments, p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load rental payments: %w", err)
	}
	return nil
}
