package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/poiesic/docsearch/ai"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

const (
	// candidateSetSize is the per-branch retrieval depth. It is independent
	// of k: both branches always fetch this many candidates before fusion.
	candidateSetSize = 50

	// maxQueryChars is the longest accepted query.
	maxQueryChars = 500

	minK = 1
	maxK = 100
)

// Searcher provides hybrid lexical and vector search over stored chunks.
type Searcher struct {
	chunks   storage.ChunkRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	chunks storage.ChunkRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		chunks:   chunks,
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SearchOptions holds the tunable parameters of one search call.
type SearchOptions struct {
	// Scope restricts results to one document when non-empty.
	Scope string

	// K is the maximum number of hits returned. Must be in [1, 100].
	K int

	// Alpha weights the lexical score against the vector score:
	// fused = alpha*lexical + (1-alpha)*vector. Must be in [0, 1].
	// 1.0 degenerates to pure lexical ranking, 0.0 to pure vector ranking.
	Alpha float64
}

// DefaultSearchOptions returns the default search parameters.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		K:     20,
		Alpha: 0.55,
	}
}

func (o SearchOptions) validate() error {
	if o.K < minK || o.K > maxK {
		return fmt.Errorf("%w: got %d", ErrInvalidK, o.K)
	}
	if o.Alpha < 0 || o.Alpha > 1 {
		return fmt.Errorf("%w: got %f", ErrInvalidAlpha, o.Alpha)
	}
	return nil
}

// Response is the result of one search call.
type Response struct {
	// Query echoes the original query text.
	Query string

	// Scope echoes the document scope, empty when unscoped.
	Scope string

	// Hits are the fused results, best first, at most K entries.
	Hits []*core.SearchHit
}

// Search runs a hybrid search for the query.
// Returns up to opts.K hits ranked by fused score.
func (s *Searcher) Search(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	return s.SearchWithMonitor(ctx, query, opts, nil)
}

// SearchWithMonitor runs a hybrid search with monitoring.
// The monitor receives callbacks at each stage of the search process.
//
// Both retrieval branches run concurrently against the store and must both
// succeed: a failed branch fails the whole search rather than degrading to
// single-branch results.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, opts SearchOptions, monitor SearchMonitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(query) > maxQueryChars {
		return nil, fmt.Errorf("%w: %d characters", ErrQueryTooLong, utf8.RuneCountInString(query))
	}

	monitor.Start(query, opts.Scope)

	// An empty query short-circuits without touching the embedder or store.
	if strings.TrimSpace(query) == "" {
		response := &Response{Query: query, Scope: opts.Scope, Hits: []*core.SearchHit{}}
		monitor.Finish(response)
		return response, nil
	}

	// Embed the query exactly once; the vector branch shares this embedding.
	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: embedding query: %w", core.ErrEmbedding, err)
	}

	var (
		wg         sync.WaitGroup
		lexical    []*core.ScoredChunk
		vector     []*core.ScoredChunk
		lexicalErr error
		vectorErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		lexical, lexicalErr = s.chunks.LexicalTopN(ctx, query, opts.Scope, candidateSetSize)
	}()
	go func() {
		defer wg.Done()
		vector, vectorErr = s.chunks.VectorTopN(ctx, embedding, opts.Scope, candidateSetSize)
	}()
	wg.Wait()

	if lexicalErr != nil {
		s.logger.Error("error running lexical search", "err", lexicalErr)
		return nil, fmt.Errorf("%w: lexical search: %w", core.ErrStore, lexicalErr)
	}
	if vectorErr != nil {
		s.logger.Error("error running vector search", "err", vectorErr)
		return nil, fmt.Errorf("%w: vector search: %w", core.ErrStore, vectorErr)
	}

	monitor.AfterLexicalSearch(lexical)
	monitor.AfterVectorSearch(vector)

	ranked := fuse(lexical, vector, opts.Alpha)
	monitor.AfterFusion(ranked)

	if len(ranked) > opts.K {
		ranked = ranked[:opts.K]
	}

	response := &Response{Query: query, Scope: opts.Scope, Hits: ranked}
	monitor.Finish(response)

	s.logger.Debug("search complete",
		"query", query, "scope", opts.Scope,
		"lexical", len(lexical), "vector", len(vector), "hits", len(ranked))

	return response, nil
}

// fusedCandidate carries the per-branch scores of one unioned chunk.
type fusedCandidate struct {
	chunk *core.Chunk
	lex   float64
	vec   float64
}

// fuse unions the two candidate sets by chunk identity and scores each
// member by linear interpolation: fused = alpha*lex + (1-alpha)*vec. A
// chunk present in only one set gets 0 for the missing score. The result
// is ordered by fused score descending, ties broken by ascending chunk ID.
func fuse(lexical, vector []*core.ScoredChunk, alpha float64) []*core.SearchHit {
	union := make(map[core.ID]*fusedCandidate, len(lexical)+len(vector))

	for _, candidate := range lexical {
		union[candidate.Chunk.Id] = &fusedCandidate{chunk: candidate.Chunk, lex: candidate.Score}
	}
	for _, candidate := range vector {
		if existing, ok := union[candidate.Chunk.Id]; ok {
			existing.vec = candidate.Score
			continue
		}
		union[candidate.Chunk.Id] = &fusedCandidate{chunk: candidate.Chunk, vec: candidate.Score}
	}

	hits := make([]*core.SearchHit, 0, len(union))
	for _, candidate := range union {
		hits = append(hits, &core.SearchHit{
			Chunk: candidate.chunk,
			Score: alpha*candidate.lex + (1-alpha)*candidate.vec,
		})
	}

	slices.SortFunc(hits, func(a, b *core.SearchHit) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		case a.Chunk.Id < b.Chunk.Id:
			return -1
		case a.Chunk.Id > b.Chunk.Id:
			return 1
		default:
			return 0
		}
	})

	return hits
}
