// Package citation finds [chunk N] markers in answers and resolves them to
// stored chunk text.
package citation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

var markerPattern = regexp.MustCompile(`(?i)\[chunk\s+(\d+)\]`)

// Format renders the marker citing a chunk index.
func Format(index int) string {
	return fmt.Sprintf("[chunk %d]", index)
}

// ExtractIndices returns the distinct chunk indices cited in answer,
// ascending. Markers are case-insensitive and allow any whitespace between
// the word and the number. Numbers too large for int are ignored.
func ExtractIndices(answer string) []int {
	matches := markerPattern.FindAllStringSubmatch(answer, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[int]struct{}, len(matches))
	indices := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		indices = append(indices, n)
	}

	slices.Sort(indices)
	return indices
}

// ChunkLookup fetches a chunk's content by document name and index.
type ChunkLookup interface {
	GetChunkByIndex(ctx context.Context, name string, index int) (string, error)
}

// Resolve looks up each index in order. A missing chunk yields a citation
// with Found false; any other lookup failure is returned.
func Resolve(ctx context.Context, lookup ChunkLookup, name string, indices []int) ([]domain.Citation, error) {
	citations := make([]domain.Citation, 0, len(indices))

	for _, idx := range indices {
		content, err := lookup.GetChunkByIndex(ctx, name, idx)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			citations = append(citations, domain.Citation{Index: idx})
		case err != nil:
			return nil, fmt.Errorf("resolving chunk %d: %w", idx, err)
		default:
			citations = append(citations, domain.Citation{Index: idx, Content: content, Found: true})
		}
	}

	return citations, nil
}
