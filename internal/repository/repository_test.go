package repository

import (
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var lastUpdate = time.Date(2006, 2, 15, 5, 3, 42, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

// q matches a query containing fragment literally.
func q(fragment string) string { return regexp.QuoteMeta(fragment) }

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

// columns names n placeholder columns; only the count matters to Scan.
func columns(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "c"
	}
	return out
}

func filmValues(id int64, title string) []driver.Value {
	return []driver.Value{
		id, title, "A epic drama", int64(2006), int64(1),
		nil, int64(6), 0.99, int64(86),
		20.99, "PG", "Deleted Scenes,Behind the Scenes", lastUpdate,
	}
}

func addressValues(id int64, street, city, country string) []driver.Value {
	return []driver.Value{
		id, street, nil, "Alberta", "12345", "555-0100",
		int64(300), city, int64(20), country,
	}
}
