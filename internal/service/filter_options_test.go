package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-rental-api/internal/model"
)

type fakeLookups struct {
	fail string // name of the lookup that errors
}

var errLookup = errors.New("lookup failed")

func (f fakeLookups) err(name string) error {
	if f.fail == name {
		return errLookup
	}
	return nil
}

func (f fakeLookups) Categories(context.Context) ([]model.Category, error) {
	return []model.Category{{CategoryID: 1, Name: "Action"}}, f.err("categories")
}

func (f fakeLookups) Languages(context.Context) ([]model.Language, error) {
	return []model.Language{{LanguageID: 1, Name: "English"}}, f.err("languages")
}

func (f fakeLookups) Actors(context.Context) ([]model.Actor, error) {
	return []model.Actor{{ActorID: 1, FirstName: "PENELOPE", LastName: "GUINESS"}}, f.err("actors")
}

func (f fakeLookups) ReleaseYears(context.Context) ([]int64, error) {
	return []int64{2006}, f.err("years")
}

func (f fakeLookups) StoreOptions(context.Context) ([]model.StoreOption, error) {
	return []model.StoreOption{{StoreID: 1, Name: "47 MySakila Drive, Lethbridge"}}, f.err("stores")
}

func (f fakeLookups) CustomerOptions(context.Context) ([]model.CustomerOption, error) {
	return []model.CustomerOption{{CustomerID: 1, Name: "MARY SMITH"}}, f.err("customers")
}

func (f fakeLookups) FilmOptions(context.Context) ([]model.FilmOption, error) {
	return []model.FilmOption{{FilmID: 1, Title: "ACADEMY DINOSAUR"}}, f.err("films")
}

func TestFilmOptions(t *testing.T) {
	got, err := NewFilterOptions(fakeLookups{}).Films(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.Category{{CategoryID: 1, Name: "Action"}}, got.Categories)
	assert.Equal(t, []int64{2006}, got.Years)
	require.Len(t, got.Actors, 1)
	assert.Equal(t, "PENELOPE GUINESS", got.Actors[0].FullName)
}

func TestFilmOptionsAllOrNothing(t *testing.T) {
	for _, name := range []string{"categories", "languages", "actors", "years"} {
		t.Run(name, func(t *testing.T) {
			got, err := NewFilterOptions(fakeLookups{fail: name}).Films(context.Background())
			assert.ErrorIs(t, err, errLookup)
			assert.Nil(t, got)
		})
	}
}

func TestRentalOptions(t *testing.T) {
	got, err := NewFilterOptions(fakeLookups{}).Rentals(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Stores, 1)
	assert.Equal(t, "MARY SMITH", got.Customers[0].Name)
	assert.Equal(t, "ACADEMY DINOSAUR", got.Films[0].Title)
}

func TestRentalOptionsAllOrNothing(t *testing.T) {
	for _, name := range []string{"stores", "customers", "films"} {
		t.Run(name, func(t *testing.T) {
			got, err := NewFilterOptions(fakeLookups{fail: name}).Rentals(context.Background())
			assert.ErrorIs(t, err, errLookup)
			assert.Nil(t, got)
		})
	}
}

func TestNewFilterOptionsNil(t *testing.T) {
	assert.Panics(t, func() { NewFilterOptions(nil) })
}
