package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docsearch/ai"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

// embedBatchSize is the number of segments sent to the embedder per request.
const embedBatchSize = 32

// Pipeline turns parser extractions into embedded, stored chunks.
// Embedding batches run concurrently on a worker pool; storage writes are
// ordered so chunk IDs follow document order.
type Pipeline struct {
	documents storage.DocumentRepository
	chunks    storage.ChunkRepository
	embedder  ai.Embedder
	embedPool *ants.Pool
	maxChars  int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embedPool != nil {
			p.embedPool.Release()
		}

		embedPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embedPool = embedPool
		return nil
	}
}

// WithMaxChars sets the segment size limit in characters.
// Default is DefaultMaxChars.
func WithMaxChars(maxChars int) Option {
	return func(p *Pipeline) error {
		if maxChars < 1 {
			return ErrInvalidMaxChars
		}
		p.maxChars = maxChars
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	documents storage.DocumentRepository,
	chunks storage.ChunkRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embedPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		chunks:    chunks,
		embedder:  embedder,
		embedPool: embedPool,
		maxChars:  DefaultMaxChars,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestOptions holds optional parameters for ingestion.
// Each field overrides the corresponding extraction field when set.
type IngestOptions struct {
	DocumentID string // Overrides the extraction's document id
	Title      string // Overrides the extraction's title
	SourceKey  string // Object key of the original file, if any
}

// Ingest upserts the document record and stores one embedded chunk per text
// piece of the extraction: segmented paragraphs, linearized tables, image
// captions, and image OCR text. Existing chunks of the document are never
// modified or removed; re-ingesting appends a fresh set.
//
// The whole operation is fail-fast: the first embedding or storage error
// aborts it and nothing after the failing batch is written.
func (p *Pipeline) Ingest(ctx context.Context, extraction *Extraction, opts *IngestOptions) ([]*core.Chunk, error) {
	if extraction == nil {
		return nil, ErrExtractionRequired
	}
	if opts == nil {
		opts = &IngestOptions{}
	}

	docID := opts.DocumentID
	if docID == "" {
		docID = extraction.DocumentID
	}
	if docID == "" {
		return nil, ErrDocumentIDRequired
	}

	title := opts.Title
	if title == "" {
		title = extraction.Title
	}
	if title == "" {
		title = docID
	}

	logger := p.logger.With("run", uuid.NewString(), "document", docID)

	doc := &core.Document{
		ID:        docID,
		Title:     title,
		PageCount: extraction.NumPages,
		SourceKey: opts.SourceKey,
	}
	logger.Info("upserting document", "title", title, "pages", doc.PageCount)
	if err := p.documents.UpsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: upserting document: %w", core.ErrStore, err)
	}

	pieces := p.buildPieces(docID, extraction)
	if len(pieces) == 0 {
		logger.Info("extraction contains no text pieces")
		return nil, nil
	}

	logger.Info("embedding pieces", "pieces", len(pieces))
	if err := p.embedPieces(ctx, pieces); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrEmbedding, err)
	}

	inserted, err := p.chunks.InsertChunks(ctx, pieces...)
	if err != nil {
		return nil, fmt.Errorf("%w: inserting chunks: %w", core.ErrStore, err)
	}

	logger.Info("ingestion complete", "chunks", len(inserted))
	return inserted, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embedPool != nil {
		p.embedPool.Release()
	}
}

// buildPieces converts extraction content into unembedded chunks, in
// document order: paragraphs, then tables, then images.
func (p *Pipeline) buildPieces(docID string, extraction *Extraction) []*core.Chunk {
	var pieces []*core.Chunk

	addPiece := func(chunkType core.ChunkType, page int, bbox map[string]float64, rawText string) {
		text := Normalize(rawText)
		if text == "" {
			return
		}
		if bbox == nil {
			bbox = map[string]float64{}
		}
		for _, part := range SegmentText(text, p.maxChars) {
			pieces = append(pieces, &core.Chunk{
				DocumentID:  docID,
				Type:        chunkType,
				PageNumber:  page,
				BBox:        bbox,
				Text:        part,
				TokenCount:  len(strings.Fields(part)),
				Fingerprint: core.Fingerprint(part),
			})
		}
	}

	for _, paragraph := range extraction.Paragraphs {
		addPiece(core.ChunkTypeParagraph, paragraph.Page, paragraph.BBox, paragraph.Text)
	}
	for _, table := range extraction.Tables {
		addPiece(core.ChunkTypeTable, table.Page, table.BBox, FlattenTable(table.Cells))
	}
	for _, image := range extraction.Images {
		if image.Caption != "" {
			addPiece(core.ChunkTypeCaption, image.Page, image.BBox, image.Caption)
		}
		if image.OCRText != "" {
			addPiece(core.ChunkTypeImageOCR, image.Page, image.BBox, image.OCRText)
		}
	}

	return pieces
}

// embedPieces fills in the Embedding of every piece, batching requests and
// running batches concurrently on the worker pool. The first batch error
// aborts the whole call.
func (p *Pipeline) embedPieces(ctx context.Context, pieces []*core.Chunk) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(pieces); start += embedBatchSize {
		end := min(start+embedBatchSize, len(pieces))
		batch := pieces[start:end]

		wg.Add(1)
		submitErr := p.embedPool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, piece := range batch {
				texts[i] = piece.Text
			}

			embeddings, err := p.embedder.EmbedTexts(ctx, texts)
			if err == nil && len(embeddings) != len(batch) {
				err = fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embeddings))
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			for i := range batch {
				batch[i].Embedding = embeddings[i]
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	return firstErr
}
