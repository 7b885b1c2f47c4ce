package services

import (
	"context"

	"noion/internal/domain/models"
)

// TaskService projects unchecked todo blocks across a user's pages into a
// flat task list
type TaskService interface {
	// ListTasks recomputes the projection for the user
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
}
