package models

// GeneratedSource is the rendered output for one target
type GeneratedSource struct {
	QualifiedName string `json:"qualifiedName"`
	Path          string `json:"path"`    // slash-separated, relative to the output root
	Content       string `json:"content"` // full source text
}
