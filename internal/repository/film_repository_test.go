package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-rental-api/internal/query"
)

func i64(n int64) *int64 { return &n }

func TestFilmWhere(t *testing.T) {
	f := query.FilmFilter{
		Category: i64(3),
		Actor:    i64(7),
		Language: i64(1),
		Length:   &query.IntRange{Gt: i64(90), Lt: i64(120)},
	}
	sqlStr, args, err := FilmWhere(f).ToSql()
	require.NoError(t, err)

	for _, frag := range []string{
		"fc.category_id = ?",
		"fa.actor_id = ?",
		"f.language_id = ?",
		"f.length > ?",
		"f.length < ?",
	} {
		assert.Contains(t, sqlStr, frag)
	}
	assert.Equal(t, []any{int64(3), int64(7), int64(1), int64(90), int64(120)}, args)
}

func TestFilmWhereLengthEqWins(t *testing.T) {
	sqlStr, args, err := FilmWhere(query.FilmFilter{
		Length: &query.IntRange{Gt: i64(1), Eq: i64(100)},
	}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlStr, "f.length = ?")
	assert.NotContains(t, sqlStr, ">")
	assert.Equal(t, []any{int64(100)}, args)
}

func TestFilmWhereEmpty(t *testing.T) {
	assert.Empty(t, FilmWhere(query.FilmFilter{}))
}

func TestFilmListLoadsRelations(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM film f WHERE")).
		WithArgs(int64(1)).
		WillReturnRows(countRows(11))
	mock.ExpectQuery(q("FROM film f JOIN language l ON l.language_id = f.language_id WHERE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(15)).
			AddRow(append(filmValues(1, "ACADEMY DINOSAUR"), int64(1), "English")...).
			AddRow(append(filmValues(2, "ACE GOLDFINGER"), int64(1), "English")...))
	mock.ExpectQuery(q("FROM film_category fc JOIN category c")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(columns(3)).
			AddRow(int64(1), int64(6), "Documentary").
			AddRow(int64(2), int64(11), "Horror"))
	mock.ExpectQuery(q("FROM film_actor fa JOIN actor a")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(columns(4)).
			AddRow(int64(1), int64(1), "PENELOPE", "GUINESS").
			AddRow(int64(1), int64(10), "CHRISTIAN", "GABLE"))

	films, total, err := repo.List(context.Background(),
		query.FilmFilter{Language: i64(1)}, nil, query.Page{Page: 2, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(11), total)
	require.Len(t, films, 2)
	assert.Equal(t, "English", films[0].Language.Name)
	assert.Nil(t, films[0].OriginalLanguageID)
	assert.Equal(t, "Documentary", films[0].Categories[0].Name)
	assert.Len(t, films[0].Actors, 2)
	assert.Equal(t, "Horror", films[1].Categories[0].Name)
	assert.NotNil(t, films[1].Actors)
	assert.Empty(t, films[1].Actors)
}

func TestFilmListPagingAndSort(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM film f")).WillReturnRows(countRows(0))
	mock.ExpectQuery(q("ORDER BY f.title DESC, f.film_id ASC LIMIT 5 OFFSET 10")).
		WillReturnRows(sqlmock.NewRows(columns(15)))

	s, err := query.ParseSort("title", "desc", FilmSortFields)
	require.NoError(t, err)
	films, total, err := repo.List(context.Background(), query.FilmFilter{}, s, query.Page{Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, films)
}

func TestFilmListCountError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM film f")).WillReturnError(errors.New("connection reset"))

	_, _, err := repo.List(context.Background(), query.FilmFilter{}, nil, query.Page{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "count films"))
}

func TestFilmGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	mock.ExpectQuery(q("WHERE f.film_id = ?")).
		WithArgs(int64(99999)).
		WillReturnRows(sqlmock.NewRows(columns(15)))

	_, err := repo.GetByID(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrFilmNotFound)
}

func TestFilmGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	mock.ExpectQuery(q("WHERE f.film_id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(15)).
			AddRow(append(filmValues(1, "ACADEMY DINOSAUR"), int64(1), "English")...))
	mock.ExpectQuery(q("FROM film_category fc")).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(3)))
	mock.ExpectQuery(q("FROM film_actor fa")).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns(4)))

	film, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ACADEMY DINOSAUR", film.Title)
	require.NotNil(t, film.Length)
	assert.Equal(t, int64(86), *film.Length)
	assert.NotNil(t, film.Categories)
	assert.NotNil(t, film.Actors)
}
