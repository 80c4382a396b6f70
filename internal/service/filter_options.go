// Package service assembles responses that need more than one repository
// call. The filter-option lists are independent lookups, so they run
// concurrently and the first failure cancels the rest.
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/film-rental-api/internal/model"
)

// Lookups is the subset of the lookup repository the aggregator reads.
type Lookups interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Languages(ctx context.Context) ([]model.Language, error)
	Actors(ctx context.Context) ([]model.Actor, error)
	ReleaseYears(ctx context.Context) ([]int64, error)
	StoreOptions(ctx context.Context) ([]model.StoreOption, error)
	CustomerOptions(ctx context.Context) ([]model.CustomerOption, error)
	FilmOptions(ctx context.Context) ([]model.FilmOption, error)
}

// FilterOptions builds the option lists behind the film and rental filter
// widgets.
type FilterOptions struct {
	lookups Lookups
}

// NewFilterOptions constructs a FilterOptions reading from l.
func NewFilterOptions(l Lookups) *FilterOptions {
	if l == nil {
		panic("nil lookups passed to NewFilterOptions")
	}
	return &FilterOptions{lookups: l}
}

// Films returns categories, languages, release years and actors. Either all
// four lookups succeed or the first error is returned.
func (s *FilterOptions) Films(ctx context.Context) (*model.FilmFilterOptions, error) {
	var out model.FilmFilterOptions
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Categories, err = s.lookups.Categories(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Languages, err = s.lookups.Languages(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Years, err = s.lookups.ReleaseYears(ctx)
		return err
	})
	var actors []model.Actor
	g.Go(func() (err error) {
		actors, err = s.lookups.Actors(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.Actors = make([]model.ActorOption, 0, len(actors))
	for _, a := range actors {
		out.Actors = append(out.Actors, model.NewActorOption(a))
	}
	return &out, nil
}

// Rentals returns the store, customer and film option lists. Either all
// three lookups succeed or the first error is returned.
func (s *FilterOptions) Rentals(ctx context.Context) (*model.RentalFilterOptions, error) {
	var out model.RentalFilterOptions
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Stores, err = s.lookups.StoreOptions(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Customers, err = s.lookups.CustomerOptions(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Films, err = s.lookups.FilmOptions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
