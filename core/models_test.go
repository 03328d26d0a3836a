package core

import (
	"testing"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same fingerprint",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp1 := Fingerprint(tt.content)
			fp2 := Fingerprint(tt.content)

			if fp1 != fp2 {
				t.Errorf("Fingerprint() produced different values for same content: %d vs %d", fp1, fp2)
			}
		})
	}
}

func TestFingerprint_Different(t *testing.T) {
	fp1 := Fingerprint("content1")
	fp2 := Fingerprint("content2")

	if fp1 == fp2 {
		t.Errorf("Fingerprint() produced same value for different content")
	}
}

func TestChunkType_String(t *testing.T) {
	tests := []struct {
		name string
		typ  ChunkType
		want string
	}{
		{name: "paragraph", typ: ChunkTypeParagraph, want: "paragraph"},
		{name: "table", typ: ChunkTypeTable, want: "table"},
		{name: "caption", typ: ChunkTypeCaption, want: "caption"},
		{name: "image ocr", typ: ChunkTypeImageOCR, want: "image_ocr"},
		{name: "unknown", typ: ChunkType(99), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("ChunkType.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChunkMUS_RoundTrip(t *testing.T) {
	chunk := Chunk{
		Id:          42,
		DocumentID:  "doc-1",
		Type:        ChunkTypeTable,
		PageNumber:  7,
		BBox:        map[string]float64{"x0": 10.5, "y0": 20.25, "x1": 100, "y1": 200},
		Text:        "Region | Revenue\nNorth | 1200",
		TokenCount:  5,
		Fingerprint: Fingerprint("Region | Revenue\nNorth | 1200"),
		Embedding:   []float32{0.6, 0.8},
	}

	bs := make([]byte, ChunkMUS.Size(chunk))
	ChunkMUS.Marshal(chunk, bs)

	got, n, err := ChunkMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("ChunkMUS.Unmarshal() error: %v", err)
	}
	if n != len(bs) {
		t.Errorf("ChunkMUS.Unmarshal() consumed %d bytes, want %d", n, len(bs))
	}
	if got.Id != chunk.Id || got.DocumentID != chunk.DocumentID || got.Type != chunk.Type {
		t.Errorf("ChunkMUS round trip changed identity fields: %+v", got)
	}
	if got.Text != chunk.Text || got.TokenCount != chunk.TokenCount || got.Fingerprint != chunk.Fingerprint {
		t.Errorf("ChunkMUS round trip changed content fields: %+v", got)
	}
	if len(got.Embedding) != len(chunk.Embedding) {
		t.Fatalf("ChunkMUS round trip changed embedding length: %d", len(got.Embedding))
	}
	for i := range chunk.Embedding {
		if got.Embedding[i] != chunk.Embedding[i] {
			t.Errorf("ChunkMUS round trip changed embedding[%d]: %v", i, got.Embedding[i])
		}
	}
	for k, v := range chunk.BBox {
		if got.BBox[k] != v {
			t.Errorf("ChunkMUS round trip changed bbox[%s]: %v", k, got.BBox[k])
		}
	}
}
