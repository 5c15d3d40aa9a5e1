package posts

import "context"

// Query is a paged result cursor owned by the host.
//
// Advance mutates the host's current-post state; an iterator assumes exclusive
// use of a Query for the length of a traversal.
type Query interface {
	// HasMore reports whether another result is available
	HasMore() bool

	// Advance moves to the next result and sets it up as the host's current post
	Advance()

	// Rewind moves the cursor back before the first result
	Rewind()

	// Found returns the total number of results across all pages
	Found() int

	// Pages returns the total number of result pages
	Pages() int
}

// Globals is the host's ambient "current post" state, passed explicitly
type Globals interface {
	// CurrentPost returns the post most recently set up by a Query
	CurrentPost() *Post

	// ResetPostData restores the host's current post after a custom loop
	ResetPostData()
}

// Host executes queries and owns the globals they write to
type Host interface {
	Globals

	// Query executes a query for the given parameters
	Query(ctx context.Context, params Parameters) (Query, error)
}
