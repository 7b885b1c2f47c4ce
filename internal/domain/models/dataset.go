package models

// Dataset is the entire persisted state: two ordered collections serialized
// as one JSON document and rewritten wholesale on every mutation.
type Dataset struct {
	Pages  []Page  `json:"pages"`
	Blocks []Block `json:"blocks"`
}

// NewDataset returns an empty dataset with non-nil collections so the
// persisted form is always {"pages": [], "blocks": []}.
func NewDataset() *Dataset {
	return &Dataset{
		Pages:  []Page{},
		Blocks: []Block{},
	}
}
