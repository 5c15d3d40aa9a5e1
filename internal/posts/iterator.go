package posts

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Iterator walks the results of a host Query, one post at a time.
//
// The protocol is Rewind, then Valid/Current/Next until Valid returns false:
//
//	for it.Rewind(); it.Valid(); it.Next() {
//		render(it.Key(), it.Current())
//	}
//
// Valid does the fetching: it advances the query until a post passes every
// registered predicate and latches it. Current only returns the latched post.
// When the query runs dry, Valid resets the host's post data once for the
// pass. A caller that stops early must call Close to get the same reset.
type Iterator struct {
	id      string
	query   Query
	globals Globals
	filters []Predicate

	index   int
	latched *Post

	// exhausted is set once the reset for the current pass has run
	exhausted bool
	// dirty tracks whether Advance has touched the host globals since the last reset
	dirty bool

	logger   zerolog.Logger
	advances metric.Int64Counter
	rejected metric.Int64Counter
	resets   metric.Int64Counter
}

// IteratorOption configures an Iterator
type IteratorOption func(*iteratorOptions)

type iteratorOptions struct {
	logger zerolog.Logger
	meter  metric.Meter
}

// WithLogger sets the logger used for traversal events
func WithLogger(logger zerolog.Logger) IteratorOption {
	return func(o *iteratorOptions) {
		o.logger = logger
	}
}

// WithMeter sets the meter used for traversal counters
func WithMeter(meter metric.Meter) IteratorOption {
	return func(o *iteratorOptions) {
		o.meter = meter
	}
}

func resolveIteratorOptions(opts []IteratorOption) iteratorOptions {
	o := iteratorOptions{
		logger: zerolog.Nop(),
		meter:  noop.NewMeterProvider().Meter("posts"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewIterator creates an iterator over query that reads current posts from globals
func NewIterator(query Query, globals Globals, opts ...IteratorOption) *Iterator {
	o := resolveIteratorOptions(opts)
	id := uuid.New().String()

	return &Iterator{
		id:       id,
		query:    query,
		globals:  globals,
		logger:   o.logger.With().Str("component", "posts.iterator").Str("iterator_id", id).Logger(),
		advances: int64Counter(o.meter, "posts_iterator_advances", "Query advances performed by post iterators"),
		rejected: int64Counter(o.meter, "posts_iterator_rejected", "Posts skipped by iterator predicates"),
		resets:   int64Counter(o.meter, "posts_iterator_resets", "Host post data resets issued by post iterators"),
	}
}

func int64Counter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return noop.Int64Counter{}
	}
	return counter
}

// ID returns the identifier used in this iterator's log lines
func (it *Iterator) ID() string {
	return it.id
}

// Current returns the latched post, or nil if Valid has not latched one
func (it *Iterator) Current() *Post {
	return it.latched
}

// Key returns the zero-based position within the current pass
func (it *Iterator) Key() int {
	return it.index
}

// Next moves to the next position. The post is fetched by the following Valid.
func (it *Iterator) Next() {
	it.index++
	it.latched = nil
}

// Valid reports whether a current post is available, fetching it if needed
func (it *Iterator) Valid() bool {
	if it.latched != nil {
		return true
	}
	if it.exhausted {
		return false
	}

	ctx := context.Background()
	for it.query.HasMore() {
		it.query.Advance()
		it.dirty = true
		it.advances.Add(ctx, 1)

		post := it.globals.CurrentPost()
		if post == nil {
			it.logger.Debug().Int("key", it.index).Msg("host set up no current post, skipping")
			continue
		}
		if !it.accept(post) {
			it.rejected.Add(ctx, 1)
			continue
		}

		it.latched = post
		return true
	}

	it.exhaust(ctx)
	return false
}

// accept evaluates the predicates in registration order, stopping at the first miss
func (it *Iterator) accept(post *Post) bool {
	for _, p := range it.filters {
		if !p.Match(post) {
			return false
		}
	}
	return true
}

func (it *Iterator) exhaust(ctx context.Context) {
	it.exhausted = true
	it.dirty = false
	it.globals.ResetPostData()
	it.resets.Add(ctx, 1)

	it.logger.Debug().Int("key", it.index).Msg("traversal finished, post data reset")
}

// Rewind moves the query back to its start and begins a new pass
func (it *Iterator) Rewind() {
	it.query.Rewind()
	it.index = 0
	it.latched = nil
	it.exhausted = false

	it.logger.Debug().Msg("iterator rewound")
}

// Filter registers p after any existing predicates and returns the iterator.
// Posts must pass every registered predicate to be visited.
func (it *Iterator) Filter(p Predicate) *Iterator {
	it.filters = append(it.filters, p)
	return it
}

// FilterFunc is Filter for a plain function
func (it *Iterator) FilterFunc(fn func(post *Post) bool) *Iterator {
	return it.Filter(PredicateFunc(fn))
}

// Count returns the number of posts the query found, ignoring predicates
func (it *Iterator) Count() int {
	return it.query.Found()
}

// PageCount returns the number of result pages, ignoring predicates
func (it *Iterator) PageCount() int {
	return it.query.Pages()
}

// Close ends an abandoned pass by resetting the host's post data.
// It does nothing when the pass already finished or never advanced the query.
func (it *Iterator) Close() error {
	it.latched = nil
	if !it.dirty || it.exhausted {
		return nil
	}

	it.exhaust(context.Background())
	return nil
}

// All rewinds the iterator and yields each visited post with its key.
// Breaking out of the loop leaves the pass open; call Close afterwards.
func (it *Iterator) All() iter.Seq2[int, *Post] {
	return func(yield func(int, *Post) bool) {
		for it.Rewind(); it.Valid(); it.Next() {
			if !yield(it.Key(), it.Current()) {
				return
			}
		}
	}
}

// Collect runs a full pass and returns the visited posts in query order
func (it *Iterator) Collect() []*Post {
	var out []*Post
	for _, post := range it.All() {
		out = append(out, post)
	}
	return out
}
