package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ChunkPayload is a chunk body as it arrives at the ingestion boundary.
// The set of variants is closed: TextPayload, RecordPayload and ListPayload.
// Every variant converts itself to the text that is stored and indexed.
type ChunkPayload interface {
	// Text returns the chunk content this payload is stored as.
	Text() string

	isChunkPayload()
}

// TextPayload is a plain chunk string.
type TextPayload string

// Text returns the string unchanged.
func (p TextPayload) Text() string { return string(p) }

func (TextPayload) isChunkPayload() {}

// RecordPayload is a structured chunk, typically {"content": "..."}.
type RecordPayload map[string]any

// Text returns the "content" field, falling back to "text", and finally to
// the JSON encoding of the whole record.
func (p RecordPayload) Text() string {
	for _, key := range []string{"content", "text"} {
		if v, ok := p[key]; ok && v != nil {
			if s := fmt.Sprint(v); s != "" {
				return s
			}
		}
	}

	data, err := json.Marshal(map[string]any(p))
	if err != nil {
		return fmt.Sprint(map[string]any(p))
	}
	return string(data)
}

func (RecordPayload) isChunkPayload() {}

// ListPayload is a chunk that arrived as a list of fragments.
type ListPayload []any

// Text joins the fragments with single spaces.
func (p ListPayload) Text() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

func (ListPayload) isChunkPayload() {}

// TextPayloads wraps plain chunk strings as payloads.
func TextPayloads(chunks []string) []ChunkPayload {
	payloads := make([]ChunkPayload, len(chunks))
	for i, c := range chunks {
		payloads[i] = TextPayload(c)
	}
	return payloads
}
