package posts

import (
	"slices"
	"strings"
)

// Predicate decides whether a post is included in a traversal
type Predicate interface {
	Match(post *Post) bool
}

// PredicateFunc adapts a plain function to Predicate
type PredicateFunc func(post *Post) bool

// Match implements Predicate
func (f PredicateFunc) Match(post *Post) bool {
	return f(post)
}

// HasStatus matches posts whose status is one of statuses
func HasStatus(statuses ...string) Predicate {
	return PredicateFunc(func(post *Post) bool {
		return slices.Contains(statuses, post.Status)
	})
}

// ByAuthor matches posts written by one of the given author IDs
func ByAuthor(ids ...int64) Predicate {
	return PredicateFunc(func(post *Post) bool {
		return slices.Contains(ids, post.Author)
	})
}

// TitleContains matches posts whose title contains substr, ignoring case
func TitleContains(substr string) Predicate {
	needle := strings.ToLower(substr)
	return PredicateFunc(func(post *Post) bool {
		return strings.Contains(strings.ToLower(post.Title), needle)
	})
}

// Not inverts p
func Not(p Predicate) Predicate {
	return PredicateFunc(func(post *Post) bool {
		return !p.Match(post)
	})
}
