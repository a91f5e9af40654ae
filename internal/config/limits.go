package config

const (
	// MaxDocumentNameLength is the maximum length for document names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxDocumentNameLength = 255

	// MaxPageTitleLength is the maximum length for page titles.
	MaxPageTitleLength = 255

	// MaxTreeDepth caps the recursive walk of the hierarchy builder.
	// Nodes below the cap keep their subtrees unsorted rather than
	// recursing without bound over a corrupted or absurdly deep chain.
	MaxTreeDepth = 64
)
