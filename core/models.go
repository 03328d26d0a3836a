// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored chunks.
// It is assigned by the chunk store from a database sequence on insert.
type ID uint64

// Fingerprint generates a deterministic 64-bit content hash using BLAKE2b.
// It is stored with each chunk as an informational provenance field;
// identical text always produces an identical fingerprint.
func Fingerprint(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// ChunkType identifies the provenance of a chunk within its source document.
// It is returned to callers but never consulted by ranking logic.
type ChunkType int

const (
	// ChunkTypeParagraph is a chunk produced from running paragraph text.
	ChunkTypeParagraph ChunkType = iota + 1
	// ChunkTypeTable is a chunk produced from a linearized table grid.
	ChunkTypeTable
	// ChunkTypeCaption is a chunk produced from an image caption.
	ChunkTypeCaption
	// ChunkTypeImageOCR is a chunk produced from OCR text of an image.
	ChunkTypeImageOCR
)

// String returns the wire name of the chunk type.
func (t ChunkType) String() string {
	switch t {
	case ChunkTypeParagraph:
		return "paragraph"
	case ChunkTypeTable:
		return "table"
	case ChunkTypeCaption:
		return "caption"
	case ChunkTypeImageOCR:
		return "image_ocr"
	default:
		return "unknown"
	}
}

// Document represents an ingested source document.
// Documents are upserted by ID; repeated ingestion of the same ID replaces
// title, page count and source key. Documents are never deleted.
type Document struct {
	ID         string
	Title      string
	PageCount  int
	SourceKey  string    // Optional external-storage key of the original file
	InsertedAt time.Time // When the document was first upserted
	UpdatedAt  time.Time // When the document was last upserted
}

// Chunk is the atomic retrievable unit of document text.
// Chunks are immutable once inserted; re-ingesting a document inserts new
// chunks rather than mutating existing ones.
type Chunk struct {
	Id          ID
	DocumentID  string
	Type        ChunkType
	PageNumber  int
	BBox        map[string]float64 // Optional region on the page; opaque to ranking
	Text        string
	TokenCount  int    // Whitespace-token count of Text, informational only
	Fingerprint uint64 // BLAKE2b content hash of Text, informational only
	Embedding   []float32
	InsertedAt  time.Time
}

// ScoredChunk is a chunk retrieved by a single ranking strategy,
// carrying that strategy's relevance score.
type ScoredChunk struct {
	Chunk *Chunk
	Score float64
}

// SearchHit is a chunk in the final fused ranking, carrying its fused score.
type SearchHit struct {
	Chunk *Chunk
	Score float64
}
