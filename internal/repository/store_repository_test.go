package repository

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-rental-api/internal/query"
)

func storeValues(id int64, staff, rentals int64) []driver.Value {
	v := []driver.Value{id, id, id, lastUpdate, staff, rentals}
	return append(v, addressValues(id, "47 MySakila Drive", "Lethbridge", "Canada")...)
}

func staffValues(id, store int64) []driver.Value {
	v := []driver.Value{id, "Mike", "Hillyer", "Mike.Hillyer@sakilastaff.com", "Mike", true, store, int64(3)}
	return append(v, addressValues(3, "23 Workhaven Lane", "Lethbridge", "Canada")...)
}

func TestStoreWhere(t *testing.T) {
	sqlStr, args, err := StoreWhere(query.StoreFilter{
		City:       "Leth_",
		ZipCode:    "12345",
		StaffCount: &query.IntRange{Eq: i64(1), Gt: i64(3)},
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "LOWER(sci.city) LIKE ?")
	assert.Contains(t, sqlStr, "sa.postal_code = ?")
	assert.Contains(t, sqlStr, staffCountExpr+" = ?")
	assert.NotContains(t, sqlStr, staffCountExpr+" > ?")
	assert.Equal(t, []any{`%leth\_%`, "12345", int64(1)}, args)
}

func TestStoreGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStoreRepo(db)

	mock.ExpectQuery(q("FROM store s JOIN address sa ON sa.address_id = s.address_id")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(16)).AddRow(storeValues(1, 1, 8040)...))
	mock.ExpectQuery(q("FROM staff st")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(18)).AddRow(staffValues(1, 1)...))

	st, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, st.StaffCount)
	assert.Equal(t, int64(1), *st.StaffCount)
	assert.Equal(t, int64(8040), *st.RentalCount)
	require.Len(t, st.Staff, 1)
	assert.Equal(t, "Hillyer", st.Staff[0].LastName)
	assert.Equal(t, "Canada", st.Address.City.Country.Country)
}

func TestStoreGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStoreRepo(db)

	mock.ExpectQuery(q("WHERE s.store_id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columns(16)))

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreListSortByStaffCount(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStoreRepo(db)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM store s")).WillReturnRows(countRows(2))
	mock.ExpectQuery(q("ORDER BY staff_count DESC, s.store_id ASC LIMIT 10 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(columns(16)).
			AddRow(storeValues(2, 1, 8004)...).
			AddRow(storeValues(1, 1, 8040)...))
	mock.ExpectQuery(q("st.store_id IN (?,?)")).
		WithArgs(int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(18)).
			AddRow(staffValues(1, 1)...).
			AddRow(staffValues(2, 2)...))

	s, err := query.ParseSort("staff_count", "desc", StoreSortFields)
	require.NoError(t, err)
	stores, total, err := repo.List(context.Background(), query.StoreFilter{}, s, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, stores, 2)
	assert.Equal(t, int64(2), stores[0].StoreID)
	require.Len(t, stores[0].Staff, 1)
	assert.Equal(t, int64(2), stores[0].Staff[0].StaffID)
	assert.Equal(t, int64(1), stores[1].Staff[0].StaffID)
}

func TestStoreStaff(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStoreRepo(db)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM staff st WHERE st.store_id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(countRows(1))
	mock.ExpectQuery(q("ORDER BY st.staff_id ASC LIMIT 10 OFFSET 0")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(18)).AddRow(staffValues(1, 1)...))

	staff, total, err := repo.Staff(context.Background(), 1, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, staff, 1)
	assert.Equal(t, "Mike", staff[0].Username)
}
