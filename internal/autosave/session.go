// Package autosave holds the client-observed editing session: an in-memory
// ordered block list whose mutations are debounce-flushed to the block
// service, with a separate shorter debounce for the page title.
package autosave

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"noion/internal/blocktypes"
	"noion/internal/config"
	"noion/internal/domain/models"
	"noion/internal/domain/services"
)

var (
	// ErrNoSuchBlock is returned when a mutation targets an unknown block id
	ErrNoSuchBlock = errors.New("no such block")

	// ErrLastBlock is returned when a deletion would leave zero blocks
	ErrLastBlock = errors.New("cannot delete the last block")
)

const (
	keyBlocks = "blocks"
	keyTitle  = "title"
)

// Options tunes a session. Zero delays fall back to the defaults; tests
// inject short ones.
type Options struct {
	BlockDelay time.Duration
	TitleDelay time.Duration
	Logger     *slog.Logger
}

// Session is the editing state for one page. All mutators are safe for
// concurrent use; each one rearms the block debounce, so content only
// reaches storage after a quiet period.
type Session struct {
	pageID string
	userID string

	blocksSvc services.BlockService
	pagesSvc  services.PageService
	logger    *slog.Logger

	blockDelay time.Duration
	titleDelay time.Duration

	deb *Debouncer
	seq atomic.Uint64

	mu         sync.Mutex
	blocks     []models.Block
	title      string
	titleDirty bool
}

// NewSession starts an editing session over the page's current blocks. An
// empty initial list opens with a single blank paragraph, preserving the
// minimum-one-block invariant.
func NewSession(pageID, userID string, initial []models.Block, blocksSvc services.BlockService, pagesSvc services.PageService, opts Options) *Session {
	if opts.BlockDelay <= 0 {
		opts.BlockDelay = config.BlockAutosaveDelay
	}
	if opts.TitleDelay <= 0 {
		opts.TitleDelay = config.TitleAutosaveDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	blocks := make([]models.Block, len(initial))
	copy(blocks, initial)
	if len(blocks) == 0 {
		blocks = append(blocks, models.Block{
			ID:   uuid.NewString(),
			Type: blocktypes.TypeParagraph,
		})
	}

	return &Session{
		pageID:     pageID,
		userID:     userID,
		blocksSvc:  blocksSvc,
		pagesSvc:   pagesSvc,
		logger:     opts.Logger,
		blockDelay: opts.BlockDelay,
		titleDelay: opts.TitleDelay,
		deb:        NewDebouncer(),
		blocks:     blocks,
	}
}

// Blocks returns a snapshot of the in-memory block list in display order
func (s *Session) Blocks() []models.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// SetContent replaces the text of one block
func (s *Session) SetContent(blockID, content string) error {
	return s.mutate(blockID, func(b *models.Block) {
		b.Content = content
	})
}

// SetType changes a block's kind. Properties are kept; keys the new kind
// does not interpret simply become inert.
func (s *Session) SetType(blockID, blockType string) error {
	return s.mutate(blockID, func(b *models.Block) {
		b.Type = blockType
	})
}

// ToggleChecked flips a todo block's checked property
func (s *Session) ToggleChecked(blockID string) error {
	return s.mutate(blockID, func(b *models.Block) {
		if b.Properties == nil {
			b.Properties = map[string]any{}
		}
		b.Properties[blocktypes.PropChecked] = !b.Checked()
	})
}

// InsertAfter opens a new blank paragraph immediately after the reference
// block. The new block inherits nothing from its predecessor. This is also
// the "Enter at end of block" action: the current content stays committed in
// place and editing moves to the new block.
func (s *Session) InsertAfter(refID string) (models.Block, error) {
	s.mu.Lock()
	idx := s.index(refID)
	if idx < 0 {
		s.mu.Unlock()
		return models.Block{}, ErrNoSuchBlock
	}

	nb := models.Block{
		ID:   uuid.NewString(),
		Type: blocktypes.TypeParagraph,
	}
	s.blocks = append(s.blocks, models.Block{})
	copy(s.blocks[idx+2:], s.blocks[idx+1:])
	s.blocks[idx+1] = nb
	s.mu.Unlock()

	s.armBlocks()
	return nb, nil
}

// DeleteBlock removes a block from the sequence. Refused when it would
// leave zero blocks.
func (s *Session) DeleteBlock(blockID string) error {
	s.mu.Lock()
	if len(s.blocks) <= 1 {
		s.mu.Unlock()
		return ErrLastBlock
	}
	idx := s.index(blockID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNoSuchBlock
	}
	s.blocks = append(s.blocks[:idx], s.blocks[idx+1:]...)
	s.mu.Unlock()

	s.armBlocks()
	return nil
}

// MergeBackspace handles backspace on an empty block: when more than one
// block exists the empty block is deleted and the id of the block to focus
// (its predecessor) is returned. ok is false when nothing happened - the
// block has content, is the only block, or is already the first one with no
// predecessor to focus.
func (s *Session) MergeBackspace(blockID string) (focusID string, ok bool) {
	s.mu.Lock()
	idx := s.index(blockID)
	if idx <= 0 || len(s.blocks) <= 1 || s.blocks[idx].Content != "" {
		s.mu.Unlock()
		return "", false
	}
	focusID = s.blocks[idx-1].ID
	s.blocks = append(s.blocks[:idx], s.blocks[idx+1:]...)
	s.mu.Unlock()

	s.armBlocks()
	return focusID, true
}

// SetTitle stages a title change on the independent, shorter title debounce
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.titleDirty = true
	s.mu.Unlock()

	s.deb.Arm(keyTitle, s.titleDelay, s.flushTitle)
}

// Flush forces both pending saves immediately
func (s *Session) Flush() {
	s.deb.Fire(keyBlocks)
	s.flushBlocks()
	if s.deb.Fire(keyTitle) {
		s.flushTitle()
	}
}

// Close flushes pending work and stops all timers
func (s *Session) Close() {
	s.Flush()
	s.deb.Stop()
}

// mutate applies fn to the addressed block and rearms the block debounce
func (s *Session) mutate(blockID string, fn func(*models.Block)) error {
	s.mu.Lock()
	idx := s.index(blockID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNoSuchBlock
	}
	fn(&s.blocks[idx])
	s.mu.Unlock()

	s.armBlocks()
	return nil
}

func (s *Session) index(blockID string) int {
	for i := range s.blocks {
		if s.blocks[i].ID == blockID {
			return i
		}
	}
	return -1
}

func (s *Session) armBlocks() {
	s.deb.Arm(keyBlocks, s.blockDelay, s.flushBlocks)
}

// flushBlocks serializes the display order with empty-content blocks
// filtered out and replaces the page's persisted list. Each flush carries a
// fresh sequence number; the block service drops flushes that complete
// behind a newer one. Failures are logged and never interrupt editing.
func (s *Session) flushBlocks() {
	s.mu.Lock()
	payload := make([]models.Block, 0, len(s.blocks))
	for _, b := range s.blocks {
		if strings.TrimSpace(b.Content) == "" {
			continue
		}
		payload = append(payload, b)
	}
	seq := s.seq.Add(1)
	s.mu.Unlock()

	err := s.blocksSvc.ReplaceBlocks(context.Background(), s.pageID, &services.ReplaceBlocksRequest{
		UserID: s.userID,
		Blocks: payload,
		Seq:    seq,
	})
	if err != nil {
		s.logger.Error("block autosave failed",
			"page_id", s.pageID,
			"seq", seq,
			"error", err,
		)
	}
}

func (s *Session) flushTitle() {
	s.mu.Lock()
	if !s.titleDirty {
		s.mu.Unlock()
		return
	}
	title := s.title
	s.titleDirty = false
	s.mu.Unlock()

	_, err := s.pagesSvc.UpdateTitle(context.Background(), s.pageID, &services.UpdateTitleRequest{Title: title})
	if err != nil {
		s.logger.Error("title autosave failed",
			"page_id", s.pageID,
			"error", err,
		)
	}
}
