package models

import "time"

// DefaultTitle replaces blank or whitespace-only page titles at write time.
const DefaultTitle = "Untitled"

// Page is a titled document owned by a user, containing an ordered list of
// blocks. JSON field names are part of the wire contract and must not change.
type Page struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Title      string    `json:"title"`
	IsArchived bool      `json:"isArchived"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
