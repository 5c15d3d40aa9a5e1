package posts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// QueryBuilder builds a configured post iterator
type QueryBuilder interface {
	Build(ctx context.Context) (*Iterator, error)
}

// ConfigureFunc adjusts query parameters before the query runs.
// It receives a copy it may modify and return. Returning nil leaves the
// parameters unchanged.
type ConfigureFunc func(params Parameters) Parameters

// Builder configures and runs a post query for one post type
type Builder struct {
	host      Host
	postType  string
	configure []ConfigureFunc
	tracer    trace.Tracer
	iterOpts  []IteratorOption
	logger    zerolog.Logger
}

// Compile-time interface compliance check
var _ QueryBuilder = (*Builder)(nil)

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithConfigure appends a configuration step. Steps run in the order given.
func WithConfigure(fn ConfigureFunc) BuilderOption {
	return func(b *Builder) {
		b.configure = append(b.configure, fn)
	}
}

// WithTracer sets the tracer used to span query execution
func WithTracer(tracer trace.Tracer) BuilderOption {
	return func(b *Builder) {
		b.tracer = tracer
	}
}

// WithIteratorOptions sets the options passed to every iterator the builder creates
func WithIteratorOptions(opts ...IteratorOption) BuilderOption {
	return func(b *Builder) {
		b.iterOpts = append(b.iterOpts, opts...)
	}
}

// NewBuilder creates a builder querying host for posts of postType
func NewBuilder(host Host, postType string, opts ...BuilderOption) *Builder {
	b := &Builder{
		host:     host,
		postType: postType,
		tracer:   noop.NewTracerProvider().Tracer("posts"),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.logger = resolveIteratorOptions(b.iterOpts).logger.With().
		Str("component", "posts.builder").
		Str("post_type", postType).
		Logger()

	return b
}

// Parameters returns the configuration Build would run, without running it
func (b *Builder) Parameters() Parameters {
	params := Parameters{
		ParamPostType: b.postType,
	}
	for _, fn := range b.configure {
		if next := fn(params.Clone()); next != nil {
			params = next
		}
	}
	return params
}

// Build runs the configured query and returns an iterator over its results
func (b *Builder) Build(ctx context.Context) (*Iterator, error) {
	if b.host == nil {
		return nil, ErrNilHost
	}

	params := b.Parameters()

	ctx, span := b.tracer.Start(ctx, "posts.query",
		trace.WithAttributes(attribute.String("post_type", b.postType)))
	defer span.End()

	query, err := b.host.Query(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to query %s posts: %w", b.postType, err)
	}
	if query == nil {
		return nil, ErrNilQuery
	}

	b.logger.Debug().
		Int("found", query.Found()).
		Int("pages", query.Pages()).
		Msg("query executed")

	return NewIterator(query, b.host, b.iterOpts...), nil
}

// PerPage limits each page to n posts; -1 disables paging
func PerPage(n int) ConfigureFunc {
	return func(params Parameters) Parameters {
		params[ParamPerPage] = n
		return params
	}
}

// Page selects the 1-based result page
func Page(n int) ConfigureFunc {
	return func(params Parameters) Parameters {
		params[ParamPaged] = n
		return params
	}
}

// Status restricts the query to the given post statuses. With no statuses
// the host default applies.
func Status(statuses ...string) ConfigureFunc {
	return func(params Parameters) Parameters {
		if len(statuses) == 0 {
			delete(params, ParamPostStatus)
			return params
		}
		params[ParamPostStatus] = statuses
		return params
	}
}

// OrderBy sorts results by field in the given direction (ASC or DESC)
func OrderBy(field, order string) ConfigureFunc {
	return func(params Parameters) Parameters {
		params[ParamOrderBy] = field
		params[ParamOrder] = order
		return params
	}
}
