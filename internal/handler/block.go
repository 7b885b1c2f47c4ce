package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"noion/internal/domain/models"
	"noion/internal/domain/services"
	"noion/internal/httputil"
)

// BlockHandler handles block HTTP requests
type BlockHandler struct {
	blockService services.BlockService
	logger       *slog.Logger
}

// NewBlockHandler creates a new block handler
func NewBlockHandler(blockService services.BlockService, logger *slog.Logger) *BlockHandler {
	return &BlockHandler{
		blockService: blockService,
		logger:       logger,
	}
}

// ListBlocks lists a page's blocks by ascending position
// GET /api/pages/{id}/blocks
func (h *BlockHandler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	pageID := r.PathValue("id")
	if pageID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "page ID is required")
		return
	}

	blocks, err := h.blockService.ListBlocks(r.Context(), pageID)
	if err != nil {
		handleError(w, err)
		return
	}
	if blocks == nil {
		blocks = []models.Block{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"blocks": blocks})
}

// replaceBlocksBody keeps blocks as raw JSON so a non-array value degrades
// to an empty list instead of a decode error, per the wire contract.
type replaceBlocksBody struct {
	UserID string          `json:"userId"`
	Blocks json.RawMessage `json:"blocks"`
}

// ReplaceBlocks replaces the page's entire block list
// PUT /api/pages/{id}/blocks
func (h *BlockHandler) ReplaceBlocks(w http.ResponseWriter, r *http.Request) {
	pageID := r.PathValue("id")
	if pageID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "page ID is required")
		return
	}

	var body replaceBlocksBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	var blocks []models.Block
	if len(body.Blocks) > 0 {
		if err := json.Unmarshal(body.Blocks, &blocks); err != nil {
			blocks = nil
		}
	}

	err := h.blockService.ReplaceBlocks(r.Context(), pageID, &services.ReplaceBlocksRequest{
		UserID: body.UserID,
		Blocks: blocks,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}
