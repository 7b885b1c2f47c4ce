package models

import "time"

// Block is one unit of page content: a type tag, plain-text payload and an
// open properties map. "checked" (bool) is the only key the backend
// interprets, and only for todo blocks; unknown keys round-trip untouched.
type Block struct {
	ID         string         `json:"id"`
	PageID     string         `json:"pageId"`
	UserID     string         `json:"userId"`
	Type       string         `json:"type"`
	Content    string         `json:"content"`
	Position   int            `json:"position"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// Checked reports whether the block's properties mark it as completed.
func (b *Block) Checked() bool {
	v, ok := b.Properties["checked"].(bool)
	return ok && v
}

// NormalizeReplacement prepares an incoming block list for a full replace of
// a page's blocks. Array order is authoritative: position is re-derived from
// the index and any position on the input is overwritten. Client-supplied
// ids survive; blocks without one get an id from mintID. createdAt is taken
// from the incoming record, else from the previously persisted block with
// the same id (via existing), else stamped now. updatedAt is always now and
// properties default to an empty map.
func NormalizeReplacement(pageID, userID string, incoming []Block, existing map[string]time.Time, now time.Time, mintID func() string) []Block {
	normalized := make([]Block, 0, len(incoming))
	for i, in := range incoming {
		b := Block{
			ID:         in.ID,
			PageID:     pageID,
			UserID:     userID,
			Type:       in.Type,
			Content:    in.Content,
			Position:   i,
			Properties: in.Properties,
			CreatedAt:  in.CreatedAt,
			UpdatedAt:  now,
		}
		if b.ID == "" {
			b.ID = mintID()
		}
		if b.Properties == nil {
			b.Properties = map[string]any{}
		}
		if b.CreatedAt.IsZero() {
			if prev, ok := existing[b.ID]; ok {
				b.CreatedAt = prev
			} else {
				b.CreatedAt = now
			}
		}
		normalized = append(normalized, b)
	}
	return normalized
}
