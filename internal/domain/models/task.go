package models

import "time"

// Task is a read-only projection of an unchecked todo block joined to its
// page's title. Recomputed per request, never persisted.
type Task struct {
	ID        string    `json:"id"`
	PageID    string    `json:"pageId"`
	PageTitle string    `json:"pageTitle"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
