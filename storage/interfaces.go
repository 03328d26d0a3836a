package storage

import (
	"context"

	"github.com/poiesic/docsearch/core"
)

// Repository provides common operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the repository and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing documents.
type DocumentRepository interface {
	Repository

	// UpsertDocument inserts or replaces a document by ID.
	// Title, page count and source key are replaced on conflict; the original
	// InsertedAt timestamp is preserved and UpdatedAt is refreshed.
	UpsertDocument(ctx context.Context, doc *core.Document) error

	// GetDocument retrieves a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id string) (*core.Document, error)
}

// ChunkRepository provides operations for managing and ranking chunks.
type ChunkRepository interface {
	Repository

	// InsertChunks inserts one or more chunks.
	// Assigns new IDs from the store sequence and sets InsertedAt.
	// Chunks are validated before insertion; chunks are immutable afterwards.
	// Returns the chunks with generated IDs and timestamps populated.
	InsertChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunksByDocument retrieves all chunks belonging to a document,
	// ordered by ascending chunk ID (insertion order).
	GetChunksByDocument(ctx context.Context, documentID string) ([]*core.Chunk, error)

	// LexicalTopN returns up to n chunks ranked by lexical relevance to the
	// query text, best first. Scores are >= 0; chunks with zero relevance are
	// not returned. A non-empty scope restricts results to that document.
	LexicalTopN(ctx context.Context, query string, scope string, n int) ([]*core.ScoredChunk, error)

	// VectorTopN returns up to n chunks ranked by similarity of the given
	// embedding to each stored embedding, best first. Similarity is the inner
	// product, which equals 1 - cosine distance for unit vectors. A non-empty
	// scope restricts results to that document.
	VectorTopN(ctx context.Context, embedding []float32, scope string, n int) ([]*core.ScoredChunk, error)
}
