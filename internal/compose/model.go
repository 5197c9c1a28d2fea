package compose

// BlockKind discriminates the content block variants.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockBullets   BlockKind = "bullets"
	BlockKeyValue  BlockKind = "keyValue"
)

// Block is one unit of section content.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Items []string  `json:"items,omitempty"`
	Key   string    `json:"key,omitempty"`
	Value string    `json:"value,omitempty"`
}

// Paragraph builds a flowing-text block.
func Paragraph(text string) Block {
	return Block{Kind: BlockParagraph, Text: text}
}

// Bullets builds a bullet-list block.
func Bullets(items []string) Block {
	return Block{Kind: BlockBullets, Items: items}
}

// KeyValue builds a labeled one-line block.
func KeyValue(key, value string) Block {
	return Block{Kind: BlockKeyValue, Key: key, Value: value}
}

// Section is a titled, ordered run of blocks.
type Section struct {
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// DocumentModel is the read-only projection of a completed form state,
// rebuilt on every export and never persisted.
type DocumentModel struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// SectionTitles returns the ordered section-title sequence.
func (m DocumentModel) SectionTitles() []string {
	titles := make([]string, 0, len(m.Sections))
	for _, s := range m.Sections {
		titles = append(titles, s.Title)
	}
	return titles
}
