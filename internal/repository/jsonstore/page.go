// Package jsonstore implements the repositories over the flat-file JSON
// document store. Every operation is one load-mutate-save transaction
// against the whole dataset.
package jsonstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"noion/internal/domain"
	"noion/internal/domain/models"
	"noion/internal/domain/repositories"
	"noion/internal/storage/jsonfile"
)

// PageRepository implements repositories.PageRepository over the file store
type PageRepository struct {
	store  *jsonfile.Store
	logger *slog.Logger
}

// NewPageRepository creates a new page repository
func NewPageRepository(store *jsonfile.Store, logger *slog.Logger) repositories.PageRepository {
	return &PageRepository{
		store:  store,
		logger: logger,
	}
}

// ListByOwner returns the owner's non-archived pages sorted by updatedAt
// descending. Position is only a tiebreak hint, never the primary sort.
func (r *PageRepository) ListByOwner(ctx context.Context, userID string) ([]models.Page, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	pages := make([]models.Page, 0)
	for _, p := range ds.Pages {
		if p.UserID == userID && !p.IsArchived {
			pages = append(pages, p)
		}
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if !pages[i].UpdatedAt.Equal(pages[j].UpdatedAt) {
			return pages[i].UpdatedAt.After(pages[j].UpdatedAt)
		}
		return pages[i].Position > pages[j].Position
	})
	return pages, nil
}

// GetByID retrieves a page by ID
func (r *PageRepository) GetByID(ctx context.Context, pageID string) (*models.Page, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}

	for i := range ds.Pages {
		if ds.Pages[i].ID == pageID {
			page := ds.Pages[i]
			return &page, nil
		}
	}
	return nil, fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
}

// CountByOwner counts every page of the owner, archived included. Used for
// position assignment at creation.
func (r *PageRepository) CountByOwner(ctx context.Context, userID string) (int, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}

	count := 0
	for _, p := range ds.Pages {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

// Create appends the prepared page record and persists
func (r *PageRepository) Create(ctx context.Context, page *models.Page) error {
	err := r.store.Update(ctx, func(ds *models.Dataset) error {
		ds.Pages = append(ds.Pages, *page)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

// UpdateTitle overwrites the title and refreshes updatedAt
func (r *PageRepository) UpdateTitle(ctx context.Context, pageID, title string) (*models.Page, error) {
	var updated *models.Page
	err := r.store.Update(ctx, func(ds *models.Dataset) error {
		for i := range ds.Pages {
			if ds.Pages[i].ID == pageID {
				ds.Pages[i].Title = title
				ds.Pages[i].UpdatedAt = now()
				page := ds.Pages[i]
				updated = &page
				return nil
			}
		}
		return fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Archive sets the soft-delete flag
func (r *PageRepository) Archive(ctx context.Context, pageID string) (*models.Page, error) {
	var archived *models.Page
	err := r.store.Update(ctx, func(ds *models.Dataset) error {
		for i := range ds.Pages {
			if ds.Pages[i].ID == pageID {
				ds.Pages[i].IsArchived = true
				ds.Pages[i].UpdatedAt = now()
				page := ds.Pages[i]
				archived = &page
				return nil
			}
		}
		return fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return archived, nil
}

// Delete removes the page and cascades removal of its blocks. Surviving
// pages are not renumbered; position gaps are acceptable.
func (r *PageRepository) Delete(ctx context.Context, pageID string) error {
	err := r.store.Update(ctx, func(ds *models.Dataset) error {
		pages := ds.Pages[:0]
		for _, p := range ds.Pages {
			if p.ID != pageID {
				pages = append(pages, p)
			}
		}
		ds.Pages = pages

		blocks := ds.Blocks[:0]
		for _, b := range ds.Blocks {
			if b.PageID != pageID {
				blocks = append(blocks, b)
			}
		}
		ds.Blocks = blocks
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}
