// Package mock provides test doubles for the ai package interfaces.
//
// The mock embedder generates deterministic unit vectors from a text hash,
// so tests get stable, comparable embeddings without an external service.
// Behavior can be overridden per test via the exported function fields.
package mock
