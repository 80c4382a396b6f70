package model

// Actor represents a row in the `actor` table.
type Actor struct {
    ActorID   int64  `json:"actor_id"`   // actor.actor_id
    FirstName string `json:"first_name"` // actor.first_name
    LastName  string `json:"last_name"`  // actor.last_name
}

// ActorOption is an Actor with a display name for filter widgets.
type ActorOption struct {
    Actor
    FullName string `json:"full_name"`
}

// NewActorOption derives the display name "first last".
func NewActorOption(a Actor) ActorOption {
    return ActorOption{Actor: a, FullName: a.FirstName + " " + a.LastName}
}

// Category represents a row in the `category` table.
type Category struct {
    CategoryID int64  `json:"category_id"` // category.category_id
    Name       string `json:"name"`        // category.name
}

// Language represents a row in the `language` table.
type Language struct {
    LanguageID int64  `json:"language_id"` // language.language_id
    Name       string `json:"name"`        // language.name
}
