package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/docsearch/core"
)

// Key prefixes for different data types
const (
	documentPrefix = "docrec"
	chunkPrefix    = "churec"
	chunkDocPrefix = "chudoc"
	chunkIDSeq     = "churecseq"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", documentPrefix, id))
}

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkPrefix, id))
}

// makeChunkDocKey generates a composite key for the document index.
// Format: prefix:documentID\x00chunkID. The NUL byte terminates the document
// id so that ids sharing a prefix ("doc-1", "doc-10") never collide in range
// scans; the chunk ID is BigEndian so lexicographic order matches numeric order.
func makeChunkDocKey(documentID string, id core.ID) []byte {
	prefix := chunkDocPrefix + ":" + documentID
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 1 + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	buf[offset] = 0
	offset++
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChunkDocKey generates a partial key for scanning all chunks
// of a document.
func makePartialChunkDocKey(documentID string) []byte {
	prefix := chunkDocPrefix + ":" + documentID
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+1)
	offset := copy(buf, prefixBytes)
	buf[offset] = 0
	return buf
}
