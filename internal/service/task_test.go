package service

import (
	"context"
	"errors"
	"testing"

	"noion/internal/domain"
	"noion/internal/domain/models"
	"noion/internal/domain/services"
)

func TestTaskService_ListTasks(t *testing.T) {
	pages, blocks, logger := testStack(t)
	pageSvc := NewPageService(pages, logger)
	blockSvc := NewBlockService(blocks, testRegistry(t), logger)
	taskSvc := NewTaskService(pages, blocks, logger)
	ctx := context.Background()

	page, err := pageSvc.CreatePage(ctx, &services.CreatePageRequest{UserID: "u1", Title: "Errands"})
	if err != nil {
		t.Fatal(err)
	}
	err = blockSvc.ReplaceBlocks(ctx, page.ID, &services.ReplaceBlocksRequest{
		UserID: "u1",
		Blocks: []models.Block{
			{Type: "paragraph", Content: "not a task"},
			{Type: "todo", Content: "buy milk"},
			{Type: "todo", Content: "done already", Properties: map[string]any{"checked": true}},
			{Type: "todo", Content: "call plumber", Properties: map[string]any{"checked": false}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	tasks, err := taskSvc.ListTasks(ctx, "u1")
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.PageID != page.ID || task.PageTitle != "Errands" {
			t.Errorf("task not joined to its page: %+v", task)
		}
		if task.Content == "done already" {
			t.Error("checked todo projected as open task")
		}
	}
}

func TestTaskService_ListTasks_DropsDanglingAndArchived(t *testing.T) {
	pages, blocks, logger := testStack(t)
	pageSvc := NewPageService(pages, logger)
	blockSvc := NewBlockService(blocks, testRegistry(t), logger)
	taskSvc := NewTaskService(pages, blocks, logger)
	ctx := context.Background()

	page, err := pageSvc.CreatePage(ctx, &services.CreatePageRequest{UserID: "u1", Title: "Soon archived"})
	if err != nil {
		t.Fatal(err)
	}
	if err := blockSvc.ReplaceBlocks(ctx, page.ID, &services.ReplaceBlocksRequest{
		UserID: "u1",
		Blocks: []models.Block{{Type: "todo", Content: "hidden with its page"}},
	}); err != nil {
		t.Fatal(err)
	}
	// A todo pointing at a page that never existed
	if err := blockSvc.ReplaceBlocks(ctx, "ghost", &services.ReplaceBlocksRequest{
		UserID: "u1",
		Blocks: []models.Block{{Type: "todo", Content: "orphan"}},
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := pageSvc.ArchivePage(ctx, page.ID); err != nil {
		t.Fatal(err)
	}

	tasks, err := taskSvc.ListTasks(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("archived/dangling todos leaked into tasks: %+v", tasks)
	}
}

func TestTaskService_ListTasks_RequiresUserID(t *testing.T) {
	pages, blocks, logger := testStack(t)
	taskSvc := NewTaskService(pages, blocks, logger)

	_, err := taskSvc.ListTasks(context.Background(), "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("ListTasks() error = %v, want ErrValidation", err)
	}
}

func TestTaskService_ListTasks_EmptyIsNotNil(t *testing.T) {
	pages, blocks, logger := testStack(t)
	taskSvc := NewTaskService(pages, blocks, logger)

	tasks, err := taskSvc.ListTasks(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if tasks == nil {
		t.Error("ListTasks() returned nil slice; the wire shape needs []")
	}
}
