package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (storage.ChunkRepository, error) {
	idSeq, err := backend.GetSequence(chunkIDSeq)
	if err != nil {
		return nil, err
	}

	return &ChunkRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ChunkRepository) Close() error {
	return r.idSeq.Release()
}

// InsertChunks inserts one or more chunks, assigning IDs from the store
// sequence and setting InsertedAt. Chunks are immutable after insertion.
func (r *ChunkRepository) InsertChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			chunk.Id = core.ID(nextID)
			chunk.InsertedAt = time.Now().UTC().Truncate(time.Microsecond)

			// Store primary record
			key := makeChunkKey(chunk.Id)
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}

			// Update document index
			docKey := makeChunkDocKey(chunk.DocumentID, chunk.Id)
			if err := tx.Set(docKey, storage.MarshalID(chunk.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// GetChunk retrieves a single chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error) {
	var result *core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readChunk(tx, makeChunkKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunksByDocument retrieves all chunks of a document in ascending ID
// order. The document index keys encode chunk IDs BigEndian, so iteration
// order is insertion order.
func (r *ChunkRepository) GetChunksByDocument(ctx context.Context, documentID string) ([]*core.Chunk, error) {
	var results []*core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return forEachChunk(tx, documentID, func(chunk *core.Chunk) error {
			results = append(results, chunk)
			return nil
		})
	}, false)
	return results, err
}

// LexicalTopN returns up to n chunks ranked by lexical relevance to the
// query, best first. Relevance is the Ochiai coefficient between the
// filtered token sets of the query and the chunk text; chunks with zero
// overlap are not returned.
func (r *ChunkRepository) LexicalTopN(ctx context.Context, query string, scope string, n int) ([]*core.ScoredChunk, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive", storage.ErrInvalidQuery)
	}

	querySet := tokenSet(query)
	if len(querySet) == 0 {
		return nil, nil
	}

	var scored []*core.ScoredChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return forEachChunk(tx, scope, func(chunk *core.Chunk) error {
			score := ochiai(querySet, tokenSet(chunk.Text))
			if score > 0 {
				scored = append(scored, &core.ScoredChunk{Chunk: chunk, Score: score})
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	sortScored(scored)
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored, nil
}

// VectorTopN returns up to n chunks ranked by inner product of the given
// embedding with each stored embedding, best first. For unit vectors the
// inner product equals cosine similarity.
func (r *ChunkRepository) VectorTopN(ctx context.Context, embedding []float32, scope string, n int) ([]*core.ScoredChunk, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive", storage.ErrInvalidQuery)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: embedding is empty", storage.ErrInvalidQuery)
	}

	var scored []*core.ScoredChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return forEachChunk(tx, scope, func(chunk *core.Chunk) error {
			score, err := dotProduct(embedding, chunk.Embedding)
			if err != nil {
				return err
			}
			scored = append(scored, &core.ScoredChunk{Chunk: chunk, Score: score})
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	sortScored(scored)
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored, nil
}

// forEachChunk visits every chunk, or only the chunks of one document when
// scope is non-empty. Scoped visits walk the document index; unscoped visits
// scan the primary records directly.
func forEachChunk(tx *badger.Txn, scope string, fn func(chunk *core.Chunk) error) error {
	if scope != "" {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialChunkDocKey(scope)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(opts.Prefix); iter.Valid(); iter.Next() {
			var chunkID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunkID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			chunk, err := readChunk(tx, makeChunkKey(chunkID))
			if err != nil {
				return err
			}
			if chunk == nil {
				return storage.ErrNotFound
			}
			if err := fn(chunk); err != nil {
				return err
			}
		}
		return nil
	}

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(chunkPrefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Seek(opts.Prefix); iter.Valid(); iter.Next() {
		var chunk *core.Chunk
		if err := iter.Item().Value(func(val []byte) error {
			var unmarshalErr error
			chunk, unmarshalErr = storage.UnmarshalChunk(val)
			return unmarshalErr
		}); err != nil {
			return err
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

// readChunk reads a chunk from the transaction.
// Returns nil without error when the key is absent.
func readChunk(tx *badger.Txn, key []byte) (*core.Chunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		chunk, unmarshalErr = storage.UnmarshalChunk(val)
		return unmarshalErr
	})
	return chunk, err
}

// sortScored orders chunks by descending score, breaking ties by ascending
// chunk ID for deterministic results.
func sortScored(scored []*core.ScoredChunk) {
	slices.SortFunc(scored, func(a, b *core.ScoredChunk) int {
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
}

// dotProduct computes the inner product of two equal-length vectors.
func dotProduct(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: embedding dimension mismatch (%d vs %d)", storage.ErrInvalidQuery, len(a), len(b))
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum, nil
}
