package memhost

import "github.com/okra-platform/postloop/internal/posts"

// Query is a cursor over one page of results
type Query struct {
	store   *Store
	params  posts.Parameters
	results []*posts.Post
	cursor  int
	found   int
	pages   int
}

// Compile-time interface compliance check
var _ posts.Query = (*Query)(nil)

// Parameters returns the parameters the query was executed with
func (q *Query) Parameters() posts.Parameters {
	return q.params
}

// HasMore implements posts.Query
func (q *Query) HasMore() bool {
	return q.cursor+1 < len(q.results)
}

// Advance implements posts.Query. It makes the next result the store's current post.
func (q *Query) Advance() {
	if !q.HasMore() {
		return
	}
	q.cursor++
	q.store.current = q.results[q.cursor]
}

// Rewind implements posts.Query. The store's current post is left untouched.
func (q *Query) Rewind() {
	q.cursor = -1
}

// Found implements posts.Query
func (q *Query) Found() int {
	return q.found
}

// Pages implements posts.Query
func (q *Query) Pages() int {
	return q.pages
}

// Len returns the number of results on the queried page
func (q *Query) Len() int {
	return len(q.results)
}
