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


package search

import (
	"errors"
	"fmt"

	"github.com/poiesic/docsearch/core"
)

var (
	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidK is returned when k is outside [1, 100].
	ErrInvalidK = fmt.Errorf("%w: k must be between 1 and 100", core.ErrConfiguration)

	// ErrInvalidAlpha is returned when alpha is outside [0, 1].
	ErrInvalidAlpha = fmt.Errorf("%w: alpha must be between 0 and 1", core.ErrConfiguration)

	// ErrQueryTooLong is returned when the query exceeds the length limit.
	ErrQueryTooLong = fmt.Errorf("%w: query exceeds maximum length", core.ErrConfiguration)
)
