package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/iliyamo/film-rental-api/internal/model"
	"github.com/iliyamo/film-rental-api/internal/query"
)

const (
	staffCountExpr  = "(SELECT COUNT(*) FROM staff st WHERE st.store_id = s.store_id)"
	rentalCountExpr = "(SELECT COUNT(*) FROM rental rr JOIN inventory ii ON ii.inventory_id = rr.inventory_id WHERE ii.store_id = s.store_id)"
)

// StoreSortFields are the sort_field values accepted by the store list.
var StoreSortFields = query.SortFields{
	"store_id":         "s.store_id",
	"manager_staff_id": "s.manager_staff_id",
	"address_id":       "s.address_id",
	"last_update":      "s.last_update",
	"staff_count":      "staff_count",
	"rental_count":     "rental_count",
}

// StoreRepo reads stores, their staff and their derived counts.
type StoreRepo struct {
	db *sql.DB
}

// NewStoreRepo constructs a StoreRepo with the provided DB handle.
func NewStoreRepo(db *sql.DB) *StoreRepo {
	return &StoreRepo{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// StoreWhere turns a store filter into AND-ed SQL conditions on aliases s
// (store), sa (address) and sci (city).
func StoreWhere(f query.StoreFilter) sq.And {
	conds := sq.And{}
	if f.City != "" {
		conds = append(conds, sq.Like{"LOWER(sci.city)": "%" + likeEscaper.Replace(strings.ToLower(f.City)) + "%"})
	}
	if f.ZipCode != "" {
		conds = append(conds, sq.Eq{"sa.postal_code": f.ZipCode})
	}
	if r := f.StaffCount; r != nil {
		switch {
		case r.Eq != nil:
			conds = append(conds, sq.Eq{staffCountExpr: *r.Eq})
		default:
			if r.Gt != nil {
				conds = append(conds, sq.Gt{staffCountExpr: *r.Gt})
			}
			if r.Lt != nil {
				conds = append(conds, sq.Lt{staffCountExpr: *r.Lt})
			}
		}
	}
	return conds
}

func storeFrom(sb sq.SelectBuilder) sq.SelectBuilder {
	return addressJoins(sb.From("store s"), "s.address_id", "sa", "sci", "sco")
}

func (r *StoreRepo) selectStores() sq.SelectBuilder {
	var cols []string
	cols = append(cols, storeColumns...)
	cols = append(cols, staffCountExpr+" AS staff_count", rentalCountExpr+" AS rental_count")
	cols = append(cols, addressColumns("sa", "sci", "sco")...)
	return storeFrom(psql.Select(cols...))
}

func scanStore(row rowScanner) (model.Store, error) {
	st := model.Store{
		StaffCount:  new(int64),
		RentalCount: new(int64),
		Address:     newAddress(),
		Staff:       []model.Staff{},
	}
	dest := []any{&st.StoreID, &st.ManagerStaffID, &st.AddressID, &st.LastUpdate, st.StaffCount, st.RentalCount}
	dest = append(dest, addressDest(st.Address)...)
	if err := row.Scan(dest...); err != nil {
		return model.Store{}, err
	}
	return st, nil
}

// List returns one page of stores matching the filter, each with address
// and staff, and the total number of matches.
func (r *StoreRepo) List(ctx context.Context, f query.StoreFilter, s *query.Sort, p query.Page) ([]model.Store, int64, error) {
	conds := StoreWhere(f)

	total, err := count(ctx, r.db, where(storeFrom(psql.Select("COUNT(*)")), conds))
	if err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}

	sb := where(r.selectStores(), conds).
		OrderBy(query.OrderBy(s, "s.store_id")...).
		Limit(p.Take()).
		Offset(p.Offset())

	stores := make([]model.Store, 0, min(p.Limit, 100))
	err = queryEach(ctx, r.db, sb, func(row rowScanner) error {
		st, err := scanStore(row)
		if err != nil {
			return err
		}
		stores = append(stores, st)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}
	if err := r.attachStaff(ctx, stores); err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// GetByID fetches one store with address, staff and counts. It returns
// ErrStoreNotFound if no row matches.
func (r *StoreRepo) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	q, args, err := r.selectStores().Where(sq.Eq{"s.store_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build store query: %w", err)
	}
	st, err := scanStore(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("get store %d: %w", id, err)
	}
	stores := []model.Store{st}
	if err := r.attachStaff(ctx, stores); err != nil {
		return nil, err
	}
	return &stores[0], nil
}

func selectStaff() sq.SelectBuilder {
	cols := []string{
		"st.staff_id", "st.first_name", "st.last_name", "st.email",
		"st.username", "st.active", "st.store_id", "st.address_id",
	}
	cols = append(cols, addressColumns("a", "ci", "co")...)
	return addressJoins(psql.Select(cols...).From("staff st"), "st.address_id", "a", "ci", "co")
}

func scanStaff(row rowScanner) (model.Staff, error) {
	m := model.Staff{Address: newAddress()}
	dest := []any{
		&m.StaffID, &m.FirstName, &m.LastName, &m.Email,
		&m.Username, &m.Active, &m.StoreID, &m.AddressID,
	}
	dest = append(dest, addressDest(m.Address)...)
	if err := row.Scan(dest...); err != nil {
		return model.Staff{}, err
	}
	return m, nil
}

func (r *StoreRepo) attachStaff(ctx context.Context, stores []model.Store) error {
	if len(stores) == 0 {
		return nil
	}
	ids := make([]int64, len(stores))
	index := make(map[int64]int, len(stores))
	for i, st := range stores {
		ids[i] = st.StoreID
		index[st.StoreID] = i
	}
	sb := selectStaff().Where(sq.Eq{"st.store_id": ids}).OrderBy("st.staff_id ASC")
	err := queryEach(ctx, r.db, sb, func(row rowScanner) error {
		m, err := scanStaff(row)
		if err != nil {
			return err
		}
		if i, ok := index[m.StoreID]; ok {
			stores[i].Staff = append(stores[i].Staff, m)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load store staff: %w", err)
	}
	return nil
}

// Staff returns one page of the staff working at a store. An unknown store
// yields an empty page.
func (r *StoreRepo) Staff(ctx context.Context, storeID int64, p query.Page) ([]model.Staff, int64, error) {
	byStore := sq.Eq{"st.store_id": storeID}

	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("staff st").Where(byStore))
	if err != nil {
		return nil, 0, fmt.Errorf("count store staff: %w", err)
	}

	sb := selectStaff().Where(byStore).
		OrderBy("st.staff_id ASC").
		Limit(p.Take()).
		Offset(p.Offset())

	staff := make([]model.Staff, 0, min(p.Limit, 100))
	err = queryEach(ctx, r.db, sb, func(row rowScanner) error {
		m, err := scanStaff(row)
		if err != nil {
			return err
		}
		staff = append(staff, m)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list store staff: %w", err)
	}
	return staff, total, nil
}
