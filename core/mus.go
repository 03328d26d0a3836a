package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for values persisted by the storage layer. The set of
// stored types is small and flat, so they are composed by hand from the
// mus-go primitive serializers instead of being generated.
var (
	IDMUS       = idMUS{}
	DocumentMUS = documentMUS{}
	ChunkMUS    = chunkMUS{}

	embeddingMUS = ord.NewSliceSer[float32](raw.Float32)
	bboxMUS      = ord.NewMapSer[string, float64](ord.String, raw.Float64)
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// Timestamps are stored as microseconds since the Unix epoch.

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

type documentMUS struct{}

func (documentMUS) Marshal(doc Document, bs []byte) (n int) {
	n = ord.String.Marshal(doc.ID, bs)
	n += ord.String.Marshal(doc.Title, bs[n:])
	n += varint.Int.Marshal(doc.PageCount, bs[n:])
	n += ord.String.Marshal(doc.SourceKey, bs[n:])
	n += marshalTime(doc.InsertedAt, bs[n:])
	n += marshalTime(doc.UpdatedAt, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (doc Document, n int, err error) {
	var n1 int
	if doc.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if doc.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return doc, n + n1, err
	}
	n += n1
	if doc.PageCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return doc, n + n1, err
	}
	n += n1
	if doc.SourceKey, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return doc, n + n1, err
	}
	n += n1
	if doc.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return doc, n + n1, err
	}
	n += n1
	if doc.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return doc, n + n1, err
	}
	n += n1
	return doc, n, nil
}

func (documentMUS) Size(doc Document) (size int) {
	size = ord.String.Size(doc.ID)
	size += ord.String.Size(doc.Title)
	size += varint.Int.Size(doc.PageCount)
	size += ord.String.Size(doc.SourceKey)
	size += sizeTime(doc.InsertedAt)
	size += sizeTime(doc.UpdatedAt)
	return size
}

type chunkMUS struct{}

func (chunkMUS) Marshal(chunk Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(chunk.Id, bs)
	n += ord.String.Marshal(chunk.DocumentID, bs[n:])
	n += varint.Int.Marshal(int(chunk.Type), bs[n:])
	n += varint.Int.Marshal(chunk.PageNumber, bs[n:])
	n += bboxMUS.Marshal(chunk.BBox, bs[n:])
	n += ord.String.Marshal(chunk.Text, bs[n:])
	n += varint.Int.Marshal(chunk.TokenCount, bs[n:])
	n += varint.Uint64.Marshal(chunk.Fingerprint, bs[n:])
	n += embeddingMUS.Marshal(chunk.Embedding, bs[n:])
	n += marshalTime(chunk.InsertedAt, bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (chunk Chunk, n int, err error) {
	var n1 int
	if chunk.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if chunk.DocumentID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return chunk, n + n1, err
	}
	n += n1
	var typ int
	if typ, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return chunk, n + n1, err
	}
	chunk.Type = ChunkType(typ)
	n += n1
	if chunk.PageNumber, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return chunk, n + n1, err
	}
	n += n1
	if chunk.BBox, n1, err = bboxMUS.Unmarshal(bs[n:]); err != nil {
		return chunk, n + n1, err
	}
	n += n1
	if chunk.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return chunk, n + n1, err
	}
	n += n1
	if chunk.TokenCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return chunk, n + n1, err
	}
	n += n1
	if chunk.Fingerprint, n1, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return chunk, n + n1, err
	}
	n += n1
	if chunk.Embedding, n1, err = embeddingMUS.Unmarshal(bs[n:]); err != nil {
		return chunk, n + n1, err
	}
	n += n1
	if chunk.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return chunk, n + n1, err
	}
	n += n1
	return chunk, n, nil
}

func (chunkMUS) Size(chunk Chunk) (size int) {
	size = IDMUS.Size(chunk.Id)
	size += ord.String.Size(chunk.DocumentID)
	size += varint.Int.Size(int(chunk.Type))
	size += varint.Int.Size(chunk.PageNumber)
	size += bboxMUS.Size(chunk.BBox)
	size += ord.String.Size(chunk.Text)
	size += varint.Int.Size(chunk.TokenCount)
	size += varint.Uint64.Size(chunk.Fingerprint)
	size += embeddingMUS.Size(chunk.Embedding)
	size += sizeTime(chunk.InsertedAt)
	return size
}
