package docsearch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/docsearch/ai/mock"
	"github.com/poiesic/docsearch/ingestion"
	"github.com/poiesic/docsearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir, WithEmbedder(mock.NewEmbedder()))
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.DocumentRepository())
		assert.NotNil(t, db.ChunkRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile, WithEmbedder(mock.NewEmbedder()))
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(t.TempDir(), WithEmbedder(mock.NewEmbedder()))
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase(t.TempDir(), WithEmbedder(mock.NewEmbedder()))
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := db.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})
}

func TestDatabase_IngestAndSearch(t *testing.T) {
	db, err := NewDatabase(t.TempDir(), WithEmbedder(mock.NewEmbedder()))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	pipeline, err := db.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	extraction := &ingestion.Extraction{
		DocumentID: "doc-1",
		Title:      "Feline Habits",
		NumPages:   1,
		Paragraphs: []ingestion.Paragraph{
			{Page: 1, Text: "The cat sat on the mat. It was warm."},
			{Page: 1, Text: "Dogs prefer the garden over the house."},
		},
	}
	inserted, err := pipeline.Ingest(ctx, extraction, nil)
	require.NoError(t, err)
	require.Len(t, inserted, 2)

	searcher, err := db.NewSearcher()
	require.NoError(t, err)

	response, err := searcher.Search(ctx, "cat mat", search.SearchOptions{K: 5, Alpha: 0.5})
	require.NoError(t, err)
	require.NotEmpty(t, response.Hits)
	assert.Equal(t, "The cat sat on the mat. It was warm.", response.Hits[0].Chunk.Text)
	assert.Greater(t, response.Hits[0].Score, 0.0)

	doc, err := db.DocumentRepository().GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Feline Habits", doc.Title)
}
