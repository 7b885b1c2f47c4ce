package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"noion/internal/config"
	"noion/internal/domain"
	"noion/internal/domain/models"
	"noion/internal/domain/repositories"
	"noion/internal/domain/services"
)

// pageService implements the PageService interface
type pageService struct {
	pages  repositories.PageRepository
	logger *slog.Logger
}

// NewPageService creates a new page service
func NewPageService(pages repositories.PageRepository, logger *slog.Logger) services.PageService {
	return &pageService{
		pages:  pages,
		logger: logger,
	}
}

// ListPages retrieves the user's non-archived pages, newest update first
func (s *pageService) ListPages(ctx context.Context, userID string) ([]models.Page, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	return s.pages.ListByOwner(ctx, userID)
}

// GetPage retrieves a page by ID
func (s *pageService) GetPage(ctx context.Context, pageID string) (*models.Page, error) {
	return s.pages.GetByID(ctx, pageID)
}

// CreatePage creates an empty page. The title is trimmed and blank titles
// fall back to the default placeholder; position is the count of the owner's
// existing pages at this moment and is never renumbered later.
func (s *pageService) CreatePage(ctx context.Context, req *services.CreatePageRequest) (*models.Page, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	position, err := s.pages.CountByOwner(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	page := &models.Page{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		Title:      normalizeTitle(req.Title),
		IsArchived: false,
		Position:   position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.pages.Create(ctx, page); err != nil {
		return nil, err
	}

	s.logger.Info("page created",
		"page_id", page.ID,
		"user_id", page.UserID,
		"position", page.Position,
	)
	return page, nil
}

// UpdateTitle normalizes and overwrites the page title
func (s *pageService) UpdateTitle(ctx context.Context, pageID string, req *services.UpdateTitleRequest) (*models.Page, error) {
	if err := validation.Validate(req.Title, validation.Length(0, config.MaxPageTitleLength)); err != nil {
		return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
	}
	return s.pages.UpdateTitle(ctx, pageID, normalizeTitle(req.Title))
}

// ArchivePage soft-deletes a page
func (s *pageService) ArchivePage(ctx context.Context, pageID string) (*models.Page, error) {
	page, err := s.pages.Archive(ctx, pageID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page archived", "page_id", pageID)
	return page, nil
}

// DeletePage removes the page and all of its blocks; deleting a nonexistent
// id is a no-op
func (s *pageService) DeletePage(ctx context.Context, pageID string) error {
	if err := s.pages.Delete(ctx, pageID); err != nil {
		return err
	}
	s.logger.Info("page deleted", "page_id", pageID)
	return nil
}

func (s *pageService) validateCreateRequest(req *services.CreatePageRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title, validation.Length(0, config.MaxPageTitleLength)),
	)
}

// normalizeTitle trims the title and substitutes the default placeholder for
// blank or whitespace-only input
func normalizeTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return models.DefaultTitle
	}
	return trimmed
}
