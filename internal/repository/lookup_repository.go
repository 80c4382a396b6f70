package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/film-rental-api/internal/model"
)

// LookupRepo serves the small reference lists: actors, categories,
// languages and the option lists behind the filter widgets.
type LookupRepo struct {
	db *sql.DB
}

// NewLookupRepo constructs a LookupRepo with the provided DB handle.
func NewLookupRepo(db *sql.DB) *LookupRepo {
	return &LookupRepo{db: db}
}

// Actors lists every actor ordered by first then last name.
func (r *LookupRepo) Actors(ctx context.Context) ([]model.Actor, error) {
	sb := psql.Select("actor_id", "first_name", "last_name").
		From("actor").
		OrderBy("first_name ASC", "last_name ASC")
	out := []model.Actor{}
	err := queryEach(ctx, r.db, sb, func(row rowScanner) error {
		var a model.Actor
		if err := row.Scan(&a.ActorID, &a.FirstName, &a.LastName); err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	return out, nil
}

// Categories lists every category ordered by name.
func (r *LookupRepo) Categories(ctx context.Context) ([]model.Category, error) {
	sb := psql.Select("category_id", "name").From("category").OrderBy("name ASC")
	out := []model.Category{}
	err := queryEach(ctx, r.db, sb, func(row rowScanner) error {
		var c model.Category
		if err := row.Scan(&c.CategoryID, &c.Name); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// Languages lists every language ordered by name.
func (r *LookupRepo) Languages(ctx context.Context) ([]model.Language, error) {
	sb := psql.Select("language_id", "name").From("language").OrderBy("name ASC")
	out := []model.Language{}
	err := queryEach(ctx, r.db, sb, func(row rowScanner) error {
		var l model.Language
		if err := row.Scan(&l.LanguageID, &l.Name); err != nil {
			return err
		}
		out = append(out, l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return out, nil
}

// ReleaseYears lists the distinct non-null film release years, newest first.
func (r *LookupRepo) ReleaseYears(ctx context.Context) ([]int64, error) {
	sb := psql.Select("release_year").Distinct().
		From("film").
		Where("release_year IS NOT NULL").
		OrderBy("release_year DESC")
	out := []int64{}
	err := queryEach(ctx, r.db, sb, func(row rowScanner) error {
		var y int64
		if err := row.Scan(&y); err != nil {
			return err
		}
		out = append(out, y)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list release years: %w", err)
	}
	return out, nil
}

// StoreOptions labels every store as "<street address>, <city>".
func (r *LookupRepo) StoreOptions(ctx context.Context) ([]model.StoreOption, error) {
	sb := psql.Select("s.store_id", "a.address", "ci.city").
		From("store s").
		Join("address a ON a.address_id = s.address_id").
		Join("city ci ON ci.city_id = a.city_id").
		OrderBy("s.store_id ASC")
	out := []model.StoreOption{}
	err := queryEach(ctx, r.db, sb, func(row rowScanner) error {
		var (
			o             model.StoreOption
			address, city string
		)
		if err := row.Scan(&o.StoreID, &address, &city); err != nil {
			return err
		}
		o.Name = address + ", " + city
		out = append(out, o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list store options: %w", err)
	}
	return out, nil
}

// CustomerOptions labels every customer by full name.
func (r *LookupRepo) CustomerOptions(ctx context.Context) ([]model.CustomerOption, error) {
	sb := psql.Select("customer_id", "first_name", "last_name").
		From("customer").
		OrderBy("customer_id ASC")
	out := []model.CustomerOption{}
	err := queryEach(ctx, r.db, sb, func(row rowScanner) error {
		var (
			o           model.CustomerOption
			first, last string
		)
		if err := row.Scan(&o.CustomerID, &first, &last); err != nil {
			return err
		}
		o.Name = first + " " + last
		out = append(out, o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list customer options: %w", err)
	}
	return out, nil
}

// FilmOptions lists every film id and title.
func (r *LookupRepo) FilmOptions(ctx context.Context) ([]model.FilmOption, error) {
	sb := psql.Select("film_id", "title").From("film").OrderBy("film_id ASC")
	out := []model.FilmOption{}
	err := queryEach(ctx, r.db, sb, func(row rowScanner) error {
		var o model.FilmOption
		if err := row.Scan(&o.FilmID, &o.Title); err != nil {
			return err
		}
		out = append(out, o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list film options: %w", err)
	}
	return out, nil
}

// Ping verifies the database is reachable.
func (r *LookupRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
