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


package ingestion

import (
	"fmt"

	"github.com/poiesic/docsearch/core"
)

var (
	// ErrDocumentRepositoryRequired indicates a missing document repository.
	ErrDocumentRepositoryRequired = fmt.Errorf("%w: document repository is required", core.ErrConfiguration)

	// ErrChunkRepositoryRequired indicates a missing chunk repository.
	ErrChunkRepositoryRequired = fmt.Errorf("%w: chunk repository is required", core.ErrConfiguration)

	// ErrEmbedderRequired indicates a missing embedder.
	ErrEmbedderRequired = fmt.Errorf("%w: embedder is required", core.ErrConfiguration)

	// ErrInvalidMaxChars indicates an invalid segment size limit.
	ErrInvalidMaxChars = fmt.Errorf("%w: max chars must be positive", core.ErrConfiguration)

	// ErrDocumentIDRequired indicates that no document ID was provided either
	// explicitly or in the extraction payload.
	ErrDocumentIDRequired = fmt.Errorf("%w: document id is required", core.ErrConfiguration)

	// ErrExtractionRequired indicates a nil extraction payload.
	ErrExtractionRequired = fmt.Errorf("%w: extraction is required", core.ErrConfiguration)
)
