package knowledge

import (
	"github.com/wicara-cloud/wicara/internal/domain/document"
)

// docDTO is the JSON storage shape of a knowledge document.
type docDTO struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

func toDTO(doc *document.Document) docDTO {
	return docDTO{
		Title:   doc.Title(),
		Content: doc.Content(),
		Tags:    doc.Tags(),
	}
}

// toDomain hydrates a document, tolerating missing fields: an entry
// without content still participates in title/tag scoring.
func (d docDTO) toDomain(id string) document.Document {
	return document.Reconstruct(id, d.Title, d.Content, d.Tags)
}
