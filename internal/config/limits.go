package config

import "time"

const (
	// MaxPageTitleLength is the maximum length for page titles. Limited to
	// 255 to fit in PostgreSQL VARCHAR(255) and provide reasonable UX.
	MaxPageTitleLength = 255

	// MaxBlockContentLength caps a single block's plain-text payload.
	MaxBlockContentLength = 50000

	// MaxBlocksPerReplace caps one replace payload. The editor flushes the
	// whole page on every save, so this bounds a page's size.
	MaxBlocksPerReplace = 2000

	// BlockAutosaveDelay is the quiet period after the last block mutation
	// before the editing session flushes to the block repository.
	BlockAutosaveDelay = 1000 * time.Millisecond

	// TitleAutosaveDelay is the shorter quiet period for the title field.
	TitleAutosaveDelay = 500 * time.Millisecond

	// SessionLifetime is how long a session cookie stays valid.
	SessionLifetime = 30 * 24 * time.Hour
)
