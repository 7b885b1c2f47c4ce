package jsonstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"noion/internal/domain"
	"noion/internal/domain/models"
	"noion/internal/domain/repositories"
	"noion/internal/storage/jsonfile"
)

func testRepos(t *testing.T) (repositories.PageRepository, repositories.BlockRepository) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := jsonfile.New(filepath.Join(t.TempDir(), "storage.json"), logger)
	return NewPageRepository(store, logger), NewBlockRepository(store, logger)
}

func newPage(id, userID, title string, position int, updatedAt time.Time) *models.Page {
	return &models.Page{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Position:  position,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestPageRepository_ListByOwner(t *testing.T) {
	pages, _ := testRepos(t)
	ctx := context.Background()

	base := time.Now()
	// Inserted out of recency order on purpose
	for _, p := range []*models.Page{
		newPage("old", "u1", "Old", 0, base.Add(-2*time.Hour)),
		newPage("new", "u1", "New", 1, base),
		newPage("mid", "u1", "Mid", 2, base.Add(-time.Hour)),
		newPage("other", "u2", "Not mine", 0, base),
	} {
		if err := pages.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	archived := newPage("arch", "u1", "Hidden", 3, base)
	archived.IsArchived = true
	if err := pages.Create(ctx, archived); err != nil {
		t.Fatal(err)
	}

	got, err := pages.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}

	wantOrder := []string{"new", "mid", "old"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d pages, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestPageRepository_ListByOwner_TitleUpdateMovesToFront(t *testing.T) {
	pages, _ := testRepos(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for _, p := range []*models.Page{
		newPage("a", "u1", "A", 0, base),
		newPage("b", "u1", "B", 1, base.Add(time.Minute)),
	} {
		if err := pages.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := pages.UpdateTitle(ctx, "a", "A renamed"); err != nil {
		t.Fatalf("UpdateTitle() error = %v", err)
	}

	got, err := pages.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].ID != "a" {
		t.Errorf("renamed page should list first, got %s", got[0].ID)
	}
	if got[0].Title != "A renamed" {
		t.Errorf("title not persisted: %q", got[0].Title)
	}
}

func TestPageRepository_GetByID_NotFound(t *testing.T) {
	pages, _ := testRepos(t)

	_, err := pages.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestPageRepository_UpdateTitle_NotFound(t *testing.T) {
	pages, _ := testRepos(t)

	_, err := pages.UpdateTitle(context.Background(), "missing", "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateTitle() error = %v, want ErrNotFound", err)
	}
}

func TestPageRepository_Archive(t *testing.T) {
	pages, _ := testRepos(t)
	ctx := context.Background()

	if err := pages.Create(ctx, newPage("p1", "u1", "Soon hidden", 0, time.Now())); err != nil {
		t.Fatal(err)
	}

	archived, err := pages.Archive(ctx, "p1")
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if !archived.IsArchived {
		t.Error("Archive() did not set the flag")
	}

	// Archived pages disappear from listings but stay retrievable by id
	listed, err := pages.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 0 {
		t.Errorf("archived page still listed: %+v", listed)
	}
	if _, err := pages.GetByID(ctx, "p1"); err != nil {
		t.Errorf("archived page should remain retrievable: %v", err)
	}
}

func TestPageRepository_Delete_CascadesToBlocks(t *testing.T) {
	pages, blocks := testRepos(t)
	ctx := context.Background()

	if err := pages.Create(ctx, newPage("p1", "u1", "Doomed", 0, time.Now())); err != nil {
		t.Fatal(err)
	}
	err := blocks.ReplaceAll(ctx, "p1", "u1", []models.Block{
		{Type: "paragraph", Content: "one"},
		{Type: "paragraph", Content: "two"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := pages.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := pages.GetByID(ctx, "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("page still present after delete: %v", err)
	}
	left, err := blocks.ListByPage(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("blocks survived page delete: %+v", left)
	}
}

func TestPageRepository_Delete_Idempotent(t *testing.T) {
	pages, _ := testRepos(t)

	if err := pages.Delete(context.Background(), "never-existed"); err != nil {
		t.Errorf("deleting a nonexistent page should be a no-op, got %v", err)
	}
}

func TestPageRepository_CountByOwner_IncludesArchived(t *testing.T) {
	pages, _ := testRepos(t)
	ctx := context.Background()

	if err := pages.Create(ctx, newPage("p1", "u1", "Visible", 0, time.Now())); err != nil {
		t.Fatal(err)
	}
	archived := newPage("p2", "u1", "Hidden", 1, time.Now())
	archived.IsArchived = true
	if err := pages.Create(ctx, archived); err != nil {
		t.Fatal(err)
	}

	count, err := pages.CountByOwner(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("CountByOwner() = %d, want 2 (archived pages count toward position)", count)
	}
}
