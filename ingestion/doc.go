// Package ingestion turns parser extractions into embedded, searchable chunks.
//
// The Pipeline type manages the ingestion workflow for a document, including:
//   - Upserting the document record
//   - Normalizing text and linearizing tables
//   - Segmenting long text on sentence boundaries
//   - Generating embeddings concurrently using a worker pool
//   - Storing the resulting chunks in document order
//
// Ingestion is fail-fast: the first embedding or storage error aborts the
// operation. Chunks are append-only; re-ingesting a document adds a fresh
// set without touching earlier ones.
package ingestion
