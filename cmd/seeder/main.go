package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/docsearch"
	"github.com/poiesic/docsearch/ai"
	"github.com/poiesic/docsearch/ingestion"
)

// sampleExtraction is a small built-in document for seeding a fresh index.
var sampleExtraction = &ingestion.Extraction{
	DocumentID: "sample-report",
	Title:      "Sample Quarterly Report",
	NumPages:   3,
	Paragraphs: []ingestion.Paragraph{
		{Page: 1, Text: "Revenue grew by twelve percent over the previous quarter. " +
			"Growth was strongest in the services segment, which benefited from two large contract renewals."},
		{Page: 1, Text: "Operating expenses remained flat despite the expanded headcount. " +
			"Travel costs declined as most customer meetings moved online."},
		{Page: 2, Text: "The engineering organization shipped four major releases. " +
			"Defect escape rates fell for the third consecutive quarter."},
		{Page: 3, Text: "Looking ahead, demand indicators remain positive. " +
			"The sales pipeline entering next quarter is the largest in company history."},
	},
	Tables: []ingestion.Table{
		{Page: 2, Cells: [][]string{
			{"Segment", "Revenue", "Growth"},
			{"Services", "4.1M", "18%"},
			{"Licenses", "2.3M", "5%"},
			{"Support", "1.2M", "9%"},
		}},
	},
	Images: []ingestion.Image{
		{Page: 3, Caption: "Figure 1: Revenue by segment, trailing four quarters",
			OCRText: "Services 4.1 Licenses 2.3 Support 1.2"},
	},
}

var (
	dbPath       = flag.String("db", "./docsearch_db", "path to the database directory")
	srcFileName  = flag.String("src", "", "extraction JSON file to ingest instead of the built-in sample")
	documentID   = flag.String("document-id", "", "document id override")
	embeddingURL = flag.String("embedding-host", "http://localhost:11434/v1", "embedding service host URL")
	modelName    = flag.String("embedding-model", "embeddinggemma", "embedding model name")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	aiConfig := ai.NewConfig(
		ai.WithHost(*embeddingURL),
		ai.WithEmbeddingModel(*modelName),
	)

	db, err := docsearch.NewDatabase(*dbPath, docsearch.WithAIConfig(aiConfig))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	extraction := sampleExtraction
	if *srcFileName != "" {
		extraction, err = ingestion.LoadExtraction(*srcFileName)
		if err != nil {
			panic(err)
		}
	}

	ctx := context.Background()
	inserted, err := pipeline.Ingest(ctx, extraction, &ingestion.IngestOptions{DocumentID: *documentID})
	if err != nil {
		panic(err)
	}

	slog.Info("seeding complete", "chunks", len(inserted))
}
