package docs

// DocumentNode is a document plus its position in the project tree.
// Children are sorted by ascending creation time; Level is the zero-based
// depth from the root and is recomputed on every tree build, never stored.
type DocumentNode struct {
	Document
	Children []*DocumentNode `json:"children"`
	Level    int             `json:"level"`
}
