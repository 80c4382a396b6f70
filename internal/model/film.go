package model

import "time"

// Film represents a row in the `film` table. Nullable columns are pointers
// so that they serialize as JSON null.
//
// Fields:
//  FilmID             – primary key identifier.
//  LanguageID         – spoken language of the film.
//  OriginalLanguageID – language the film was produced in, if different.
//  RentalDuration     – default rental period in days.
//  RentalRate         – price of one rental period.
//  Rating             – MPAA rating (G, PG, PG-13, R, NC-17).
//  SpecialFeatures    – comma separated SET value.
type Film struct {
    FilmID             int64      `json:"film_id"`              // film.film_id
    Title              string     `json:"title"`                // film.title
    Description        *string    `json:"description"`          // film.description
    ReleaseYear        *int64     `json:"release_year"`         // film.release_year
    LanguageID         int64      `json:"language_id"`          // film.language_id
    OriginalLanguageID *int64     `json:"original_language_id"` // film.original_language_id
    RentalDuration     int64      `json:"rental_duration"`      // film.rental_duration
    RentalRate         float64    `json:"rental_rate"`          // film.rental_rate
    Length             *int64     `json:"length"`               // film.length (minutes)
    ReplacementCost    float64    `json:"replacement_cost"`     // film.replacement_cost
    Rating             *string    `json:"rating"`               // film.rating
    SpecialFeatures    *string    `json:"special_features"`     // film.special_features
    LastUpdate         time.Time  `json:"last_update"`          // film.last_update
}

// FilmDetail is a Film with its language, categories and cast, the shape
// returned by the film endpoints.
type FilmDetail struct {
    Film
    Language   *Language  `json:"language"`
    Categories []Category `json:"categories"`
    Actors     []Actor    `json:"actors"`
}

// FilmOption is the compact film entry of the rental filter options.
type FilmOption struct {
    FilmID int64  `json:"film_id"`
    Title  string `json:"title"`
}

// FilmFilterOptions feeds the client-side film filter widgets.
type FilmFilterOptions struct {
    Categories []Category    `json:"categories"`
    Languages  []Language    `json:"languages"`
    Years      []int64       `json:"years"`
    Actors     []ActorOption `json:"actors"`
}
