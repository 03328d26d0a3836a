package search

import (
	"github.com/poiesic/docsearch/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string, scope string)
	AfterLexicalSearch(candidates []*core.ScoredChunk)
	AfterVectorSearch(candidates []*core.ScoredChunk)
	AfterFusion(ranked []*core.SearchHit)
	Finish(response *Response)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ string)                  {}
func (n *noopMonitor) AfterLexicalSearch(_ []*core.ScoredChunk)  {}
func (n *noopMonitor) AfterVectorSearch(_ []*core.ScoredChunk)   {}
func (n *noopMonitor) AfterFusion(_ []*core.SearchHit)           {}
func (n *noopMonitor) Finish(_ *Response)                        {}
