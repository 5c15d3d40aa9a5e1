package posts

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock implementations of the host capability set
type mockQuery struct {
	mock.Mock
}

func (m *mockQuery) HasMore() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockQuery) Advance() {
	m.Called()
}

func (m *mockQuery) Rewind() {
	m.Called()
}

func (m *mockQuery) Found() int {
	args := m.Called()
	return args.Int(0)
}

func (m *mockQuery) Pages() int {
	args := m.Called()
	return args.Int(0)
}

type mockGlobals struct {
	mock.Mock
}

func (m *mockGlobals) CurrentPost() *Post {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*Post)
}

func (m *mockGlobals) ResetPostData() {
	m.Called()
}

// sliceQuery is a hand-rolled Query over a fixed list of posts that writes
// the current post into sliceGlobals, the way a host would.
type sliceQuery struct {
	posts   []*Post
	cursor  int
	globals *sliceGlobals
	pages   int

	advances int
	rewinds  int
}

func newSliceQuery(posts ...*Post) (*sliceQuery, *sliceGlobals) {
	g := &sliceGlobals{}
	return &sliceQuery{posts: posts, cursor: -1, globals: g, pages: 1}, g
}

func (q *sliceQuery) HasMore() bool {
	return q.cursor+1 < len(q.posts)
}

func (q *sliceQuery) Advance() {
	q.advances++
	q.cursor++
	q.globals.current = q.posts[q.cursor]
}

func (q *sliceQuery) Rewind() {
	q.rewinds++
	q.cursor = -1
}

func (q *sliceQuery) Found() int {
	return len(q.posts)
}

func (q *sliceQuery) Pages() int {
	return q.pages
}

type sliceGlobals struct {
	current *Post
	resets  int
}

func (g *sliceGlobals) CurrentPost() *Post {
	return g.current
}

func (g *sliceGlobals) ResetPostData() {
	g.resets++
	g.current = nil
}

// stubHost records the parameters it was queried with
type stubHost struct {
	sliceGlobals
	query  Query
	err    error
	params Parameters
	calls  int
}

func (h *stubHost) Query(ctx context.Context, params Parameters) (Query, error) {
	h.calls++
	h.params = params
	if h.err != nil {
		return nil, h.err
	}
	return h.query, nil
}

func makePosts(ids ...int64) []*Post {
	out := make([]*Post, 0, len(ids))
	for _, id := range ids {
		out = append(out, &Post{ID: id, Type: "post", Status: "publish"})
	}
	return out
}
