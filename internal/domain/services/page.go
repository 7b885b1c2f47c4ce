package services

import (
	"context"

	"noion/internal/domain/models"
)

// CreatePageRequest represents a request to create a page
type CreatePageRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
}

// UpdateTitleRequest represents a request to rename a page
type UpdateTitleRequest struct {
	Title string `json:"title"`
}

// PageService defines business logic operations for pages
type PageService interface {
	// ListPages retrieves the user's non-archived pages, newest update first
	ListPages(ctx context.Context, userID string) ([]models.Page, error)

	// GetPage retrieves a page by ID
	GetPage(ctx context.Context, pageID string) (*models.Page, error)

	// CreatePage creates a new page with a normalized title
	CreatePage(ctx context.Context, req *CreatePageRequest) (*models.Page, error)

	// UpdateTitle normalizes and overwrites the page title
	UpdateTitle(ctx context.Context, pageID string, req *UpdateTitleRequest) (*models.Page, error)

	// ArchivePage soft-deletes a page
	ArchivePage(ctx context.Context, pageID string) (*models.Page, error)

	// DeletePage removes the page and all of its blocks; idempotent
	DeletePage(ctx context.Context, pageID string) error
}
