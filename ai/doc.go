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


// Package ai provides abstractions for the embedding service used by docsearch.
//
// This package defines the Embedder interface used by both the ingestion
// pipeline and the retrieval-fusion engine. It follows the dependency
// inversion principle, allowing the business logic to depend on an
// abstraction rather than a concrete embedding client.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external services
//
// Public constructors (openai.NewEmbedder) return the ai.Embedder INTERFACE
// to enforce abstraction. Test constructors (mock.NewEmbedder) return the
// CONCRETE type so tests can inject behavior via the mock's function fields
// and assert on call counts.
//
// # Embedding Contract
//
// Embedders return unit-normalized vectors (Euclidean norm = 1) of a fixed
// dimension, and are deterministic for identical input within a deployment.
// The fusion engine relies on the unit norm: the inner product of two unit
// vectors equals 1 - cosine distance.
package ai
