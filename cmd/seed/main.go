// Seeds the store with a demo user's pages and blocks so a fresh checkout
// has something to edit.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"noion/internal/blocktypes"
	"noion/internal/config"
	"noion/internal/domain/models"
	"noion/internal/domain/services"
	"noion/internal/repository/jsonstore"
	"noion/internal/service"
	"noion/internal/storage/jsonfile"

	"github.com/joho/godotenv"
)

const (
	demoUserID = "demo-user"
	demoEmail  = "demo@noion.local"
)

func main() {
	reset := flag.Bool("reset", false, "Wipe the data file before seeding (fresh start)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// Destructive resets stay out of production
	if cfg.Environment == "prod" && *reset {
		log.Fatalf("BLOCKED: cannot run --reset in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *reset {
		if err := os.Remove(cfg.DataFile); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove data file: %v", err)
		}
		log.Printf("Removed %s", cfg.DataFile)
	}

	registry, err := blocktypes.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load block kind registry: %v", err)
	}

	store := jsonfile.New(cfg.DataFile, logger)
	pageRepo := jsonstore.NewPageRepository(store, logger)
	blockRepo := jsonstore.NewBlockRepository(store, logger)
	pageService := service.NewPageService(pageRepo, logger)
	blockService := service.NewBlockService(blockRepo, registry, logger)

	ctx := context.Background()

	welcome, err := pageService.CreatePage(ctx, &services.CreatePageRequest{
		UserID: demoUserID,
		Title:  "Welcome to Noion",
	})
	if err != nil {
		log.Fatalf("Failed to create welcome page: %v", err)
	}

	err = blockService.ReplaceBlocks(ctx, welcome.ID, &services.ReplaceBlocksRequest{
		UserID: demoUserID,
		Blocks: []models.Block{
			{Type: blocktypes.TypeHeading1, Content: "Welcome to Noion"},
			{Type: blocktypes.TypeParagraph, Content: "This page is stored as an ordered list of typed blocks."},
			{Type: blocktypes.TypeBulletList, Content: "Edit any block and it autosaves after a second of quiet."},
			{Type: blocktypes.TypeBulletList, Content: "Press Enter to open a new block below the current one."},
			{Type: blocktypes.TypeTodo, Content: "Try checking off a to-do", Properties: map[string]any{blocktypes.PropChecked: false}},
		},
	})
	if err != nil {
		log.Fatalf("Failed to seed welcome blocks: %v", err)
	}

	todos, err := pageService.CreatePage(ctx, &services.CreatePageRequest{
		UserID: demoUserID,
		Title:  "Things to do",
	})
	if err != nil {
		log.Fatalf("Failed to create todo page: %v", err)
	}

	err = blockService.ReplaceBlocks(ctx, todos.ID, &services.ReplaceBlocksRequest{
		UserID: demoUserID,
		Blocks: []models.Block{
			{Type: blocktypes.TypeTodo, Content: "Plan the week", Properties: map[string]any{blocktypes.PropChecked: false}},
			{Type: blocktypes.TypeTodo, Content: "Read the onboarding page", Properties: map[string]any{blocktypes.PropChecked: true}},
		},
	})
	if err != nil {
		log.Fatalf("Failed to seed todo blocks: %v", err)
	}

	log.Printf("Seeded demo data for %s (%s) into %s", demoUserID, demoEmail, cfg.DataFile)
}
