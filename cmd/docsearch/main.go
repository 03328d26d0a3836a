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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/docsearch"
	"github.com/poiesic/docsearch/ai"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/ingestion"
	"github.com/poiesic/docsearch/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docsearch",
		Usage: "Hybrid lexical and vector search over document extractions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest a parsed document extraction into the index",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "json",
						Aliases:  []string{"j"},
						Usage:    "Path to parsed extraction JSON",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "document-id",
						Usage: "Document id (overrides the extraction's own id)",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Document title (overrides the extraction's own title)",
					},
					&cli.StringFlag{
						Name:  "source-key",
						Usage: "Object storage key of the original file (optional)",
					},
					&cli.IntFlag{
						Name:  "max-chars",
						Usage: "Maximum characters per chunk",
						Value: ingestion.DefaultMaxChars,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the index for a free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "doc",
						Usage: "Restrict results to one document id",
					},
					&cli.IntFlag{
						Name:  "k",
						Usage: "Maximum number of hits (1-100)",
						Value: 20,
					},
					&cli.Float64Flag{
						Name:  "alpha",
						Usage: "Lexical weight in score fusion (0.0-1.0)",
						Value: 0.55,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(c *cli.Context) (*docsearch.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := docsearch.NewDatabase(c.String("db"), docsearch.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	extraction, err := ingestion.LoadExtraction(c.String("json"))
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(ingestion.WithMaxChars(c.Int("max-chars")))
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	inserted, err := pipeline.Ingest(ctx, extraction, &ingestion.IngestOptions{
		DocumentID: c.String("document-id"),
		Title:      c.String("title"),
		SourceKey:  c.String("source-key"),
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d chunks\n", len(inserted))
	return nil
}

// searchHit is the JSON shape of one result printed by the search command.
type searchHit struct {
	ChunkID    core.ID            `json:"chunk_id"`
	DocumentID string             `json:"document_id"`
	Page       int                `json:"page"`
	Type       string             `json:"type"`
	BBox       map[string]float64 `json:"bbox"`
	Text       string             `json:"text"`
	Score      float64            `json:"score"`
}

type searchOutput struct {
	Query string      `json:"query"`
	Scope string      `json:"scope,omitempty"`
	Hits  []searchHit `json:"hits"`
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	response, err := searcher.Search(ctx, query, search.SearchOptions{
		Scope: c.String("doc"),
		K:     c.Int("k"),
		Alpha: c.Float64("alpha"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	output := searchOutput{
		Query: response.Query,
		Scope: response.Scope,
		Hits:  make([]searchHit, 0, len(response.Hits)),
	}
	for _, hit := range response.Hits {
		output.Hits = append(output.Hits, searchHit{
			ChunkID:    hit.Chunk.Id,
			DocumentID: hit.Chunk.DocumentID,
			Page:       hit.Chunk.PageNumber,
			Type:       hit.Chunk.Type.String(),
			BBox:       hit.Chunk.BBox,
			Text:       hit.Chunk.Text,
			Score:      hit.Score,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
