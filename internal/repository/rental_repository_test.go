package repository

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-rental-api/internal/query"
)

const rentalWidth = 54

func rentalValues(id int64, rented time.Time, returned any) []driver.Value {
	v := []driver.Value{
		id, rented, int64(367), int64(130), returned, int64(1), lastUpdate,
		int64(367), int64(80), int64(1),
	}
	v = append(v, filmValues(80, "BLANKET BEVERLY")...)
	v = append(v, int64(1), int64(1), int64(1), lastUpdate)
	v = append(v, addressValues(1, "47 MySakila Drive", "Lethbridge", "Canada")...)
	v = append(v, int64(130), int64(1), "CHARLOTTE", "HUNTER", "charlotte.hunter@sakilacustomer.org", true, int64(134))
	v = append(v, addressValues(134, "758 Junan Lane", "Stockport", "United Kingdom")...)
	return v
}

func TestRentalWhere(t *testing.T) {
	start := time.Date(2005, 5, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2005, 5, 31, 23, 59, 59, 0, time.UTC)
	sqlStr, args, err := RentalWhere(query.RentalFilter{
		Start:      &start,
		End:        &end,
		StoreID:    i64(2),
		CustomerID: i64(5),
		FilmID:     i64(9),
	}).ToSql()
	require.NoError(t, err)

	for _, frag := range []string{
		"r.rental_date >= ?",
		"r.rental_date <= ?",
		"i.store_id = ?",
		"r.customer_id = ?",
		"i.film_id = ?",
	} {
		assert.Contains(t, sqlStr, frag)
	}
	assert.Equal(t, []any{start, end, int64(2), int64(5), int64(9)}, args)
}

func TestRentalGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRentalRepo(db)

	rented := time.Date(2005, 5, 24, 22, 53, 30, 0, time.UTC)
	returned := time.Date(2005, 5, 26, 22, 4, 30, 0, time.UTC)

	mock.ExpectQuery(q("FROM rental r JOIN inventory i ON i.inventory_id = r.inventory_id")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(rentalWidth)).AddRow(rentalValues(1, rented, returned)...))
	mock.ExpectQuery(q("FROM payment p WHERE p.rental_id IN (?)")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(6)).
			AddRow(int64(1), int64(130), int64(1), int64(1), 2.99, rented))

	rt, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, rt.Duration)
	assert.Equal(t, int64(2), *rt.Duration)
	assert.Equal(t, "BLANKET BEVERLY", rt.Inventory.Film.Title)
	assert.Equal(t, "Lethbridge", rt.Inventory.Store.Address.City.City)
	assert.Equal(t, "United Kingdom", rt.Customer.Address.City.Country.Country)
	require.Len(t, rt.Payments, 1)
	assert.Equal(t, 2.99, rt.Payments[0].Amount)
}

func TestRentalGetByIDNotReturned(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRentalRepo(db)

	rented := time.Date(2006, 2, 14, 15, 16, 3, 0, time.UTC)
	mock.ExpectQuery(q("WHERE r.rental_id = ?")).
		WithArgs(int64(11496)).
		WillReturnRows(sqlmock.NewRows(columns(rentalWidth)).AddRow(rentalValues(11496, rented, nil)...))
	mock.ExpectQuery(q("FROM payment p")).
		WithArgs(int64(11496)).
		WillReturnRows(sqlmock.NewRows(columns(6)))

	rt, err := repo.GetByID(context.Background(), 11496)
	require.NoError(t, err)
	assert.Nil(t, rt.ReturnDate)
	assert.Nil(t, rt.Duration)
	assert.NotNil(t, rt.Payments)
}

func TestRentalGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRentalRepo(db)

	mock.ExpectQuery(q("WHERE r.rental_id = ?")).
		WithArgs(int64(0)).
		WillReturnRows(sqlmock.NewRows(columns(rentalWidth)))

	_, err := repo.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrRentalNotFound)
}

func TestRentalListByStore(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRentalRepo(db)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM rental r JOIN inventory i ON i.inventory_id = r.inventory_id WHERE")).
		WithArgs(int64(2)).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(q("ORDER BY r.rental_id ASC LIMIT 10 OFFSET 0")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(columns(rentalWidth)))

	rentals, total, err := repo.List(context.Background(),
		query.RentalFilter{StoreID: i64(2)}, nil, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, rentals)
	assert.Empty(t, rentals)
}
