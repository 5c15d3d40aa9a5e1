// Package memhost is an in-memory host for post queries.
//
// It keeps posts in a slice, answers a small subset of query parameters and
// tracks the current post the way a CMS tracks its global post state. It
// exists so the posts package can be exercised without a real CMS.
package memhost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/okra-platform/postloop/internal/posts"
)

// ErrInvalidParameter is returned when a query parameter cannot be converted to its expected type
var ErrInvalidParameter = errors.New("invalid query parameter")

// Store holds posts and the host's current-post state
type Store struct {
	posts []*posts.Post

	current *posts.Post
	main    *posts.Post
	resets  int

	logger zerolog.Logger
}

// Compile-time interface compliance check
var _ posts.Host = (*Store)(nil)

// NewStore creates an empty store
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		logger: logger.With().Str("component", "memhost").Logger(),
	}
}

// Add appends posts to the store, defaulting empty types and statuses
func (s *Store) Add(ps ...*posts.Post) {
	for _, p := range ps {
		if p.Type == "" {
			p.Type = defaultPostType
		}
		if p.Status == "" {
			p.Status = defaultPostStatus
		}
		s.posts = append(s.posts, p)
	}
}

// LoadFile adds the posts stored as a JSON array in path
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read posts file: %w", err)
	}

	var loaded []*posts.Post
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse posts file %s: %w", path, err)
	}

	s.Add(loaded...)
	s.logger.Info().
		Str("path", path).
		Int("posts", len(loaded)).
		Msg("posts loaded")

	return nil
}

// Len returns the number of stored posts
func (s *Store) Len() int {
	return len(s.posts)
}

// SetMainPost sets the post that ResetPostData restores, and makes it current
func (s *Store) SetMainPost(p *posts.Post) {
	s.main = p
	s.current = p
}

// CurrentPost implements posts.Globals
func (s *Store) CurrentPost() *posts.Post {
	return s.current
}

// ResetPostData implements posts.Globals
func (s *Store) ResetPostData() {
	s.current = s.main
	s.resets++
}

// Resets returns how many times ResetPostData has run
func (s *Store) Resets() int {
	return s.resets
}

// Query implements posts.Host
func (s *Store) Query(ctx context.Context, params posts.Parameters) (posts.Query, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := parseCriteria(params)
	if err != nil {
		return nil, err
	}

	matches := c.match(s.posts)
	results, pages := c.paginate(matches)

	s.logger.Debug().
		Strs("post_type", c.types).
		Int("found", len(matches)).
		Int("page", c.page).
		Int("returned", len(results)).
		Msg("query executed")

	return &Query{
		store:   s,
		params:  params.Clone(),
		results: results,
		cursor:  -1,
		found:   len(matches),
		pages:   pages,
	}, nil
}
