package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/iliyamo/film-rental-api/internal/model"
)

// psql builds MySQL statements with ? placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type rowScanner interface {
	Scan(dest ...any) error
}

// where applies the conditions of a filter, leaving the builder untouched
// when there are none.
func where(sb sq.SelectBuilder, conds sq.And) sq.SelectBuilder {
	if len(conds) == 0 {
		return sb
	}
	return sb.Where(conds)
}

func count(ctx context.Context, db *sql.DB, sb sq.SelectBuilder) (int64, error) {
	q, args, err := sb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int64
	if err := db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// queryEach runs sb and calls scan once per row.
func queryEach(ctx context.Context, db *sql.DB, sb sq.Sqlizer, scan func(rowScanner) error) error {
	q, args, err := sb.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Column lists and scan destinations shared by the joined queries. The
// order of each *Columns slice matches the order of its *Dest slice.

var filmColumns = []string{
	"f.film_id", "f.title", "f.description", "f.release_year", "f.language_id",
	"f.original_language_id", "f.rental_duration", "f.rental_rate", "f.length",
	"f.replacement_cost", "f.rating", "f.special_features", "f.last_update",
}

func filmDest(f *model.Film) []any {
	return []any{
		&f.FilmID, &f.Title, &f.Description, &f.ReleaseYear, &f.LanguageID,
		&f.OriginalLanguageID, &f.RentalDuration, &f.RentalRate, &f.Length,
		&f.ReplacementCost, &f.Rating, &f.SpecialFeatures, &f.LastUpdate,
	}
}

func addressColumns(a, ci, co string) []string {
	return []string{
		a + ".address_id", a + ".address", a + ".address2", a + ".district",
		a + ".postal_code", a + ".phone",
		ci + ".city_id", ci + ".city", co + ".country_id", co + ".country",
	}
}

// addressJoins joins address a (keyed by fk), its city ci and country co.
func addressJoins(sb sq.SelectBuilder, fk, a, ci, co string) sq.SelectBuilder {
	return sb.
		Join(fmt.Sprintf("address %s ON %s.address_id = %s", a, a, fk)).
		Join(fmt.Sprintf("city %s ON %s.city_id = %s.city_id", ci, ci, a)).
		Join(fmt.Sprintf("country %s ON %s.country_id = %s.country_id", co, co, ci))
}

func newAddress() *model.Address {
	return &model.Address{City: &model.City{Country: &model.Country{}}}
}

func addressDest(a *model.Address) []any {
	return []any{
		&a.AddressID, &a.Address, &a.Address2, &a.District, &a.PostalCode, &a.Phone,
		&a.City.CityID, &a.City.City, &a.City.Country.CountryID, &a.City.Country.Country,
	}
}
