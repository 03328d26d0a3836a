// Package search implements hybrid retrieval over stored chunks.
//
// A search runs two independent top-N retrievals against the chunk store:
//   - Lexical: keyword relevance of the query text against chunk text
//   - Vector: similarity of the query embedding against stored embeddings
//
// The two candidate sets are unioned by chunk identity and each member is
// scored by linear interpolation of its branch scores, weighted by alpha.
// The branches are independent and composable: either ranking function can
// be swapped without altering the fusion contract.
//
// Searches are stateless and read-only; any number may run concurrently.
// There is no fallback between branches — if either retrieval fails, the
// search fails, so partial outages are never masked.
package search
