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


package core

import "errors"

// Failure classes. Package-level sentinels wrap one of these so callers can
// match either the specific error or the class with errors.Is.
var (
	// ErrConfiguration indicates invalid programmatic input such as a missing
	// document identity or out-of-bounds parameters. Fatal to the operation.
	ErrConfiguration = errors.New("configuration error")

	// ErrEmbedding indicates the embedding provider was unreachable or
	// returned malformed output. Never retried by this module.
	ErrEmbedding = errors.New("embedding failure")

	// ErrStore indicates the chunk store was unreachable or a query failed.
	// Searches surface it with no partial results; ingestion aborts on it.
	ErrStore = errors.New("store failure")
)

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyDocumentID indicates the document ID field is empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrInvalidPageCount indicates a negative page count.
	ErrInvalidPageCount = errors.New("page count cannot be negative")

	// ErrEmptyText indicates the chunk Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrInvalidChunkType indicates an unknown ChunkType value.
	ErrInvalidChunkType = errors.New("invalid chunk type")

	// ErrInvalidPageNumber indicates a negative page number.
	ErrInvalidPageNumber = errors.New("page number cannot be negative")

	// ErrEmptyEmbedding indicates the chunk Embedding field is empty.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")
)
