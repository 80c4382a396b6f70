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

// FilmSortFields are the sort_field values accepted by the film list.
var FilmSortFields = query.SortFields{
	"film_id":          "f.film_id",
	"title":            "f.title",
	"release_year":     "f.release_year",
	"rental_rate":      "f.rental_rate",
	"rental_duration":  "f.rental_duration",
	"length":           "f.length",
	"rating":           "f.rating",
	"replacement_cost": "f.replacement_cost",
	"last_update":      "f.last_update",
}

// FilmRepo reads films with their language, categories and actors.
type FilmRepo struct {
	db *sql.DB
}

// NewFilmRepo constructs a FilmRepo with the provided DB handle.
func NewFilmRepo(db *sql.DB) *FilmRepo {
	return &FilmRepo{db: db}
}

// FilmWhere turns a film filter into AND-ed SQL conditions on alias f.
func FilmWhere(f query.FilmFilter) sq.And {
	conds := sq.And{}
	if f.Category != nil {
		conds = append(conds, sq.Expr(
			"EXISTS (SELECT 1 FROM film_category fc WHERE fc.film_id = f.film_id AND fc.category_id = ?)", *f.Category))
	}
	if f.Actor != nil {
		conds = append(conds, sq.Expr(
			"EXISTS (SELECT 1 FROM film_actor fa WHERE fa.film_id = f.film_id AND fa.actor_id = ?)", *f.Actor))
	}
	if f.Language != nil {
		conds = append(conds, sq.Eq{"f.language_id": *f.Language})
	}
	if f.ReleaseYear != nil {
		conds = append(conds, sq.Eq{"f.release_year": *f.ReleaseYear})
	}
	if r := f.Length; r != nil {
		switch {
		case r.Eq != nil:
			conds = append(conds, sq.Eq{"f.length": *r.Eq})
		default:
			if r.Gt != nil {
				conds = append(conds, sq.Gt{"f.length": *r.Gt})
			}
			if r.Lt != nil {
				conds = append(conds, sq.Lt{"f.length": *r.Lt})
			}
		}
	}
	return conds
}

func (r *FilmRepo) selectFilms() sq.SelectBuilder {
	cols := append(append([]string{}, filmColumns...), "l.language_id", "l.name")
	return psql.Select(cols...).
		From("film f").
		Join("language l ON l.language_id = f.language_id")
}

func scanFilmDetail(row rowScanner) (model.FilmDetail, error) {
	fd := model.FilmDetail{Language: &model.Language{}}
	dest := append(filmDest(&fd.Film), &fd.Language.LanguageID, &fd.Language.Name)
	if err := row.Scan(dest...); err != nil {
		return model.FilmDetail{}, err
	}
	fd.Categories = []model.Category{}
	fd.Actors = []model.Actor{}
	return fd, nil
}

// List returns one page of films matching the filter and the total number
// of matches.
func (r *FilmRepo) List(ctx context.Context, f query.FilmFilter, s *query.Sort, p query.Page) ([]model.FilmDetail, int64, error) {
	conds := FilmWhere(f)

	total, err := count(ctx, r.db, where(psql.Select("COUNT(*)").From("film f"), conds))
	if err != nil {
		return nil, 0, fmt.Errorf("count films: %w", err)
	}

	sb := where(r.selectFilms(), conds).
		OrderBy(query.OrderBy(s, "f.film_id")...).
		Limit(p.Take()).
		Offset(p.Offset())

	films := make([]model.FilmDetail, 0, min(p.Limit, 100))
	err = queryEach(ctx, r.db, sb, func(row rowScanner) error {
		fd, err := scanFilmDetail(row)
		if err != nil {
			return err
		}
		films = append(films, fd)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list films: %w", err)
	}
	if err := r.attachRelations(ctx, films); err != nil {
		return nil, 0, err
	}
	return films, total, nil
}

// GetByID fetches one film with its relations. It returns ErrFilmNotFound
// if no row matches.
func (r *FilmRepo) GetByID(ctx context.Context, id int64) (*model.FilmDetail, error) {
	q, args, err := r.selectFilms().Where(sq.Eq{"f.film_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build film query: %w", err)
	}
	fd, err := scanFilmDetail(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, fmt.Errorf("get film %d: %w", id, err)
	}
	films := []model.FilmDetail{fd}
	if err := r.attachRelations(ctx, films); err != nil {
		return nil, err
	}
	return &films[0], nil
}

// attachRelations loads categories and actors for all films in two queries.
func (r *FilmRepo) attachRelations(ctx context.Context, films []model.FilmDetail) error {
	if len(films) == 0 {
		return nil
	}
	ids := make([]int64, len(films))
	index := make(map[int64]int, len(films))
	for i, f := range films {
		ids[i] = f.FilmID
		index[f.FilmID] = i
	}

	cats := psql.Select("fc.film_id", "c.category_id", "c.name").
		From("film_category fc").
		Join("category c ON c.category_id = fc.category_id").
		Where(sq.Eq{"fc.film_id": ids}).
		OrderBy("c.name ASC")
	err := queryEach(ctx, r.db, cats, func(row rowScanner) error {
		var filmID int64
		var c model.Category
		if err := row.Scan(&filmID, &c.CategoryID, &c.Name); err != nil {
			return err
		}
		if i, ok := index[filmID]; ok {
			films[i].Categories = append(films[i].Categories, c)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load film categories: %w", err)
	}

	actors := psql.Select("fa.film_id", "a.actor_id", "a.first_name", "a.last_name").
		From("film_actor fa").
		Join("actor a ON a.actor_id = fa.actor_id").
		Where(sq.Eq{"fa.film_id": ids}).
		OrderBy("a.first_name ASC", "a.last_name ASC")
	err = queryEach(ctx, r.db, actors, func(row rowScanner) error {
		var filmID int64
		var a model.Actor
		if err := row.Scan(&filmID, &a.ActorID, &a.FirstName, &a.LastName); err != nil {
			return err
		}
		if i, ok := index[filmID]; ok {
			films[i].Actors = append(films[i].Actors, a)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load film actors: %w", err)
	}
	return nil
}
