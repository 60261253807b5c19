package chunking

import (
	"encoding/json"
	"io"

	"sceneloom/internal/pipeline"
)

// Encode writes the chunk list as an indented JSON array, index-ascending.
func Encode(w io.Writer, chunks []Chunk) error {
	if chunks == nil {
		chunks = []Chunk{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(chunks)
}

// Decode reads a chunk list previously written by Encode.
func Decode(r io.Reader) ([]Chunk, error) {
	var chunks []Chunk
	if err := json.NewDecoder(r).Decode(&chunks); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrMalformedArtifact, "chunk", "decode", "chunk list is not valid JSON", err)
	}
	return chunks, nil
}
