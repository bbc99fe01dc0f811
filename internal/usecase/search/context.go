package search

import (
	"fmt"
	"strings"

	"github.com/wicara-cloud/wicara/internal/domain/search/confidence"
	"github.com/wicara-cloud/wicara/internal/domain/search/result"
)

// Confidence banners prepended to the context block. The downstream prompt
// uses them to steer how assertively the model should cite the material.
const (
	bannerHigh   = "INFORMASI DITEMUKAN - Gunakan informasi ini untuk menjawab!"
	bannerMedium = "INFORMASI TERKAIT - Informasi relevan ditemukan."
	bannerLow    = "INFORMASI UMUM - Gunakan sebagai referensi."
)

// BuildContext formats the final ranked results into a single annotated
// text block for prompt construction, and reports the confidence derived
// from the top score. Empty input yields an empty context and None.
// Pure formatting; no effect on agent state.
func BuildContext(results []result.Result, t confidence.Thresholds) (string, confidence.Level) {
	if len(results) == 0 {
		return "", confidence.None
	}

	maxScore := results[0].Score()
	for i := range results {
		if results[i].Score() > maxScore {
			maxScore = results[i].Score()
		}
	}
	level := confidence.Classify(maxScore, true, t)

	parts := make([]string, 0, len(results)+1)
	switch level {
	case confidence.High:
		parts = append(parts, bannerHigh)
	case confidence.Medium:
		parts = append(parts, bannerMedium)
	default:
		parts = append(parts, bannerLow)
	}

	for i := range results {
		doc := results[i].Document()
		tags := ""
		if len(doc.Tags()) > 0 {
			tags = "\nTags: " + strings.Join(doc.Tags(), ", ")
		}
		parts = append(parts, fmt.Sprintf(
			"\n[Dokumen %d: %s] (Score: %.1f)%s\n%s",
			i+1, doc.Title(), results[i].Score(), tags, doc.Content(),
		))
	}

	return strings.Join(parts, "\n\n---\n"), level
}
