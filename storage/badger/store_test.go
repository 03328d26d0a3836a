package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

func newTestChunk(docID, text string, embedding []float32) *core.Chunk {
	return &core.Chunk{
		DocumentID:  docID,
		Type:        core.ChunkTypeParagraph,
		PageNumber:  1,
		Text:        text,
		TokenCount:  3,
		Fingerprint: core.Fingerprint(text),
		Embedding:   embedding,
	}
}

func TestDocumentUpsertAndGet(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc := &core.Document{
		ID:        "doc-1",
		Title:     "First Document",
		PageCount: 3,
		SourceKey: "reports/doc-1.pdf",
	}
	if err := docRepo.UpsertDocument(ctx, doc); err != nil {
		t.Fatalf("Failed to upsert document: %v", err)
	}
	if doc.InsertedAt.IsZero() || doc.UpdatedAt.IsZero() {
		t.Fatal("Expected timestamps to be set on insert")
	}
	firstInserted := doc.InsertedAt

	retrieved, err := docRepo.GetDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Title != "First Document" {
		t.Fatalf("Expected 'First Document', got '%s'", retrieved.Title)
	}

	// Re-upsert replaces metadata but preserves InsertedAt
	time.Sleep(2 * time.Millisecond)
	updated := &core.Document{
		ID:        "doc-1",
		Title:     "Renamed Document",
		PageCount: 5,
	}
	if err := docRepo.UpsertDocument(ctx, updated); err != nil {
		t.Fatalf("Failed to re-upsert document: %v", err)
	}

	retrieved, err = docRepo.GetDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Failed to get document after re-upsert: %v", err)
	}
	if retrieved.Title != "Renamed Document" {
		t.Fatalf("Expected replaced title, got '%s'", retrieved.Title)
	}
	if retrieved.PageCount != 5 {
		t.Fatalf("Expected replaced page count, got %d", retrieved.PageCount)
	}
	if !retrieved.InsertedAt.Equal(firstInserted) {
		t.Fatal("Expected InsertedAt to be preserved across upsert")
	}
	if !retrieved.UpdatedAt.After(firstInserted) {
		t.Fatal("Expected UpdatedAt to be refreshed on upsert")
	}
}

func TestDocumentNotFound(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	_, err = docRepo.GetDocument(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestChunkInsertAndGet(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	chunks := []*core.Chunk{
		newTestChunk("doc-1", "alpha beta gamma", []float32{1, 0, 0}),
		newTestChunk("doc-1", "delta epsilon zeta", []float32{0, 1, 0}),
		newTestChunk("doc-2", "eta theta iota", []float32{0, 0, 1}),
	}

	inserted, err := chunkRepo.InsertChunks(ctx, chunks...)
	if err != nil {
		t.Fatalf("Failed to insert chunks: %v", err)
	}
	if len(inserted) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(inserted))
	}
	for i, chunk := range inserted {
		if chunk.Id == 0 {
			t.Fatalf("Chunk %d: expected non-zero ID", i)
		}
		if chunk.InsertedAt.IsZero() {
			t.Fatalf("Chunk %d: expected InsertedAt to be set", i)
		}
	}
	if inserted[0].Id >= inserted[1].Id || inserted[1].Id >= inserted[2].Id {
		t.Fatal("Expected strictly increasing chunk IDs")
	}

	retrieved, err := chunkRepo.GetChunk(ctx, inserted[1].Id)
	if err != nil {
		t.Fatalf("Failed to get chunk: %v", err)
	}
	if retrieved.Text != "delta epsilon zeta" {
		t.Fatalf("Expected 'delta epsilon zeta', got '%s'", retrieved.Text)
	}
	if retrieved.DocumentID != "doc-1" {
		t.Fatalf("Expected document 'doc-1', got '%s'", retrieved.DocumentID)
	}

	_, err = chunkRepo.GetChunk(ctx, core.ID(999999))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing chunk, got %v", err)
	}
}

func TestChunkInsertValidation(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	bad := newTestChunk("doc-1", "", []float32{1, 0})
	_, err = chunkRepo.InsertChunks(context.Background(), bad)
	if !errors.Is(err, core.ErrInvalidChunk) {
		t.Fatalf("Expected ErrInvalidChunk, got %v", err)
	}
}

func TestGetChunksByDocument(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = chunkRepo.InsertChunks(ctx,
		newTestChunk("doc-1", "first passage", []float32{1, 0}),
		newTestChunk("doc-2", "other document", []float32{0, 1}),
		newTestChunk("doc-1", "second passage", []float32{0, 1}),
		newTestChunk("doc-1", "third passage", []float32{1, 1}),
	)
	if err != nil {
		t.Fatalf("Failed to insert chunks: %v", err)
	}

	results, err := chunkRepo.GetChunksByDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Failed to get chunks by document: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 chunks for doc-1, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Id >= results[i].Id {
			t.Fatal("Expected chunks in ascending ID order")
		}
	}
	if results[0].Text != "first passage" || results[2].Text != "third passage" {
		t.Fatal("Expected chunks in insertion order")
	}

	empty, err := chunkRepo.GetChunksByDocument(ctx, "doc-none")
	if err != nil {
		t.Fatalf("Unexpected error for unknown document: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("Expected no chunks for unknown document, got %d", len(empty))
	}
}

func TestLexicalTopN(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = chunkRepo.InsertChunks(ctx,
		newTestChunk("doc-1", "quarterly revenue grew strongly", []float32{1, 0}),
		newTestChunk("doc-1", "revenue was flat year over year", []float32{0, 1}),
		newTestChunk("doc-2", "employee headcount increased", []float32{1, 1}),
	)
	if err != nil {
		t.Fatalf("Failed to insert chunks: %v", err)
	}

	results, err := chunkRepo.LexicalTopN(ctx, "quarterly revenue", "", 10)
	if err != nil {
		t.Fatalf("Lexical search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(results))
	}
	// Both query tokens appear in the first chunk; only one in the second
	if results[0].Chunk.Text != "quarterly revenue grew strongly" {
		t.Fatalf("Expected strongest match first, got '%s'", results[0].Chunk.Text)
	}
	if results[0].Score <= results[1].Score {
		t.Fatal("Expected descending scores")
	}
	for _, r := range results {
		if r.Score <= 0 || r.Score > 1 {
			t.Fatalf("Expected score in (0, 1], got %f", r.Score)
		}
	}

	// No token overlap yields no results
	none, err := chunkRepo.LexicalTopN(ctx, "unrelated terms", "", 10)
	if err != nil {
		t.Fatalf("Lexical search failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("Expected no matches, got %d", len(none))
	}

	// Scope restricts to one document
	scoped, err := chunkRepo.LexicalTopN(ctx, "revenue headcount", "doc-2", 10)
	if err != nil {
		t.Fatalf("Scoped lexical search failed: %v", err)
	}
	if len(scoped) != 1 {
		t.Fatalf("Expected 1 scoped match, got %d", len(scoped))
	}
	if scoped[0].Chunk.DocumentID != "doc-2" {
		t.Fatalf("Expected doc-2 match, got '%s'", scoped[0].Chunk.DocumentID)
	}

	// Truncation to n
	one, err := chunkRepo.LexicalTopN(ctx, "revenue", "", 1)
	if err != nil {
		t.Fatalf("Lexical search failed: %v", err)
	}
	if len(one) != 1 {
		t.Fatalf("Expected truncation to 1 result, got %d", len(one))
	}

	_, err = chunkRepo.LexicalTopN(ctx, "revenue", "", 0)
	if !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery for n=0, got %v", err)
	}
}

func TestVectorTopN(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = chunkRepo.InsertChunks(ctx,
		newTestChunk("doc-1", "chunk a", []float32{1, 0, 0}),
		newTestChunk("doc-1", "chunk b", []float32{0.8, 0.6, 0}),
		newTestChunk("doc-2", "chunk c", []float32{0, 1, 0}),
	)
	if err != nil {
		t.Fatalf("Failed to insert chunks: %v", err)
	}

	results, err := chunkRepo.VectorTopN(ctx, []float32{1, 0, 0}, "", 2)
	if err != nil {
		t.Fatalf("Vector search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Text != "chunk a" {
		t.Fatalf("Expected 'chunk a' first, got '%s'", results[0].Chunk.Text)
	}
	if results[0].Score < 0.999 {
		t.Fatalf("Expected near-perfect similarity, got %f", results[0].Score)
	}
	if results[1].Chunk.Text != "chunk b" {
		t.Fatalf("Expected 'chunk b' second, got '%s'", results[1].Chunk.Text)
	}

	scoped, err := chunkRepo.VectorTopN(ctx, []float32{1, 0, 0}, "doc-2", 10)
	if err != nil {
		t.Fatalf("Scoped vector search failed: %v", err)
	}
	if len(scoped) != 1 {
		t.Fatalf("Expected 1 scoped result, got %d", len(scoped))
	}
	if scoped[0].Chunk.DocumentID != "doc-2" {
		t.Fatalf("Expected doc-2 result, got '%s'", scoped[0].Chunk.DocumentID)
	}

	_, err = chunkRepo.VectorTopN(ctx, []float32{1, 0}, "", 10)
	if !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery for dimension mismatch, got %v", err)
	}

	_, err = chunkRepo.VectorTopN(ctx, nil, "", 10)
	if !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery for empty embedding, got %v", err)
	}
}

func TestChunkPersistenceRoundTrip(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	chunk := newTestChunk("doc-1", "cell one | cell two", []float32{0.6, 0.8})
	chunk.Type = core.ChunkTypeTable
	chunk.BBox = map[string]float64{"x0": 10, "y0": 20, "x1": 200, "y1": 120}

	inserted, err := chunkRepo.InsertChunks(ctx, chunk)
	if err != nil {
		t.Fatalf("Failed to insert chunk: %v", err)
	}

	retrieved, err := chunkRepo.GetChunk(ctx, inserted[0].Id)
	if err != nil {
		t.Fatalf("Failed to get chunk: %v", err)
	}
	if retrieved.Type != core.ChunkTypeTable {
		t.Fatalf("Expected table chunk, got %s", retrieved.Type)
	}
	if retrieved.BBox["x1"] != 200 {
		t.Fatalf("Expected bbox to round-trip, got %v", retrieved.BBox)
	}
	if retrieved.Fingerprint != chunk.Fingerprint {
		t.Fatal("Expected fingerprint to round-trip")
	}
	if len(retrieved.Embedding) != 2 {
		t.Fatalf("Expected embedding to round-trip, got %d dims", len(retrieved.Embedding))
	}
}
