package service

import (
	"context"
	"fmt"
	"log/slog"

	"noion/internal/blocktypes"
	"noion/internal/domain"
	"noion/internal/domain/models"
	"noion/internal/domain/repositories"
	"noion/internal/domain/services"
)

// taskService projects unchecked todo blocks across a user's pages into a
// flat task list. The projection is recomputed on every request; there is no
// persisted cache or incremental index.
type taskService struct {
	pages  repositories.PageRepository
	blocks repositories.BlockRepository
	logger *slog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(pages repositories.PageRepository, blocks repositories.BlockRepository, logger *slog.Logger) services.TaskService {
	return &taskService{
		pages:  pages,
		blocks: blocks,
		logger: logger,
	}
}

// ListTasks returns the user's open todo items joined to their page titles.
// A todo whose page no longer exists (or is archived) is silently dropped.
func (s *taskService) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}

	pages, err := s.pages.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(pages))
	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = models.DefaultTitle
		}
		titles[p.ID] = title
	}

	blocks, err := s.blocks.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0)
	for _, b := range blocks {
		if b.Type != blocktypes.TypeTodo || b.Checked() {
			continue
		}
		title, ok := titles[b.PageID]
		if !ok {
			continue
		}
		tasks = append(tasks, models.Task{
			ID:        b.ID,
			PageID:    b.PageID,
			PageTitle: title,
			Content:   b.Content,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		})
	}
	return tasks, nil
}
