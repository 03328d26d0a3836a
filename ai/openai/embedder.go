package openai

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/poiesic/docsearch/ai"
	"github.com/poiesic/docsearch/core"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for embeddings
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	// Wrap in langchaingo embedder
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// EmbedText generates a unit-normalized vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}

	if err := checkEmbeddings(vectors, 1); err != nil {
		e.logger.Error("embedder returned malformed result", "err", err)
		return nil, err
	}

	return normalizeUnit(vectors[0]), nil
}

// EmbedTexts generates unit-normalized vector embeddings for multiple text
// strings in a batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	if err := checkEmbeddings(vectors, len(texts)); err != nil {
		e.logger.Error("embedder returned malformed result", "err", err)
		return nil, err
	}

	for i := range vectors {
		vectors[i] = normalizeUnit(vectors[i])
	}
	return vectors, nil
}

// checkEmbeddings validates provider output: exactly one non-empty vector per
// input text. Anything else is an embedding failure, not a caller error.
func checkEmbeddings(vectors [][]float32, want int) error {
	if len(vectors) != want {
		return fmt.Errorf("%w: provider returned %d embeddings for %d texts", core.ErrEmbedding, len(vectors), want)
	}
	for i, vector := range vectors {
		if len(vector) == 0 {
			return fmt.Errorf("%w: provider returned an empty embedding at index %d", core.ErrEmbedding, i)
		}
	}
	return nil
}

// normalizeUnit scales a vector to Euclidean norm 1. Stored embeddings and
// query embeddings must share the unit norm so that the inner product equals
// cosine similarity. Zero vectors are returned unchanged.
func normalizeUnit(vector []float32) []float32 {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vector
	}
	norm := float32(1.0 / math.Sqrt(sumSquares))
	for i := range vector {
		vector[i] *= norm
	}
	return vector
}
