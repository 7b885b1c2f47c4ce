package jsonfile

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"noion/internal/domain/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage.json")
	return New(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoad_InitializesMissingFile(t *testing.T) {
	store := testStore(t)

	ds, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ds.Pages) != 0 || len(ds.Blocks) != 0 {
		t.Errorf("expected empty dataset, got %d pages, %d blocks", len(ds.Pages), len(ds.Blocks))
	}

	// The initialization must be persisted, not just returned
	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("initialized file not written: %v", err)
	}
	var onDisk models.Dataset
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("initialized file not valid JSON: %v", err)
	}
	if onDisk.Pages == nil || onDisk.Blocks == nil {
		t.Error("persisted form should contain explicit empty collections")
	}
}

func TestLoad_ResetsCorruptFile(t *testing.T) {
	store := testStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ds.Pages) != 0 || len(ds.Blocks) != 0 {
		t.Error("corrupt file should reset to an empty dataset")
	}

	// Reset must be written back so the next load succeeds
	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	var onDisk models.Dataset
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Errorf("reset file still unparsable: %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	ds := models.NewDataset()
	ds.Pages = append(ds.Pages, models.Page{
		ID:        "p1",
		UserID:    "u1",
		Title:     "Notes",
		Position:  0,
		CreatedAt: now,
		UpdatedAt: now,
	})
	ds.Blocks = append(ds.Blocks, models.Block{
		ID:         "b1",
		PageID:     "p1",
		UserID:     "u1",
		Type:       "todo",
		Content:    "ship it",
		Properties: map[string]any{"checked": true, "color": "red"},
		CreatedAt:  now,
		UpdatedAt:  now,
	})

	if err := store.Save(ctx, ds); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Pages) != 1 || got.Pages[0].Title != "Notes" {
		t.Errorf("pages did not round-trip: %+v", got.Pages)
	}
	if len(got.Blocks) != 1 {
		t.Fatalf("blocks did not round-trip: %+v", got.Blocks)
	}
	// Arbitrary client-supplied property keys must survive persistence
	if got.Blocks[0].Properties["color"] != "red" {
		t.Errorf("open properties map lost a key: %+v", got.Blocks[0].Properties)
	}
	if !got.Blocks[0].Checked() {
		t.Error("checked property lost")
	}
}

func TestUpdate_AbortsWithoutSavingOnError(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	ds := models.NewDataset()
	ds.Pages = append(ds.Pages, models.Page{ID: "p1", UserID: "u1", Title: "keep me"})
	if err := store.Save(ctx, ds); err != nil {
		t.Fatal(err)
	}

	wantErr := os.ErrInvalid
	err := store.Update(ctx, func(ds *models.Dataset) error {
		ds.Pages = nil
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("Update() error = %v, want %v", err, wantErr)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Pages) != 1 {
		t.Error("failed Update must not persist its mutation")
	}
}
