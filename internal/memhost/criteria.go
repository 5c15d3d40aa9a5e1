package memhost

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/okra-platform/postloop/internal/posts"
)

// Query defaults
const (
	defaultPostType   = "post"
	defaultPostStatus = "publish"
	defaultPerPage    = 10
	defaultOrderBy    = "date"

	anyValue = "any"
)

// criteria is the parsed form of posts.Parameters
type criteria struct {
	types    []string // nil matches every type
	statuses []string // nil matches every status
	perPage  int      // -1 disables paging
	page     int
	orderBy  string
	desc     bool
}

func parseCriteria(params posts.Parameters) (criteria, error) {
	c := criteria{
		types:    []string{defaultPostType},
		statuses: []string{defaultPostStatus},
		perPage:  defaultPerPage,
		page:     1,
		orderBy:  defaultOrderBy,
		desc:     true,
	}

	var err error
	if v, ok := params[posts.ParamPostType]; ok {
		if c.types, err = stringList(posts.ParamPostType, v); err != nil {
			return c, err
		}
	}
	if v, ok := params[posts.ParamPostStatus]; ok {
		if c.statuses, err = stringList(posts.ParamPostStatus, v); err != nil {
			return c, err
		}
	}

	if v, ok := params[posts.ParamPerPage]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return c, fmt.Errorf("%w %s: %v", ErrInvalidParameter, posts.ParamPerPage, err)
		}
		switch {
		case n == 0:
			// zero falls back to the default page size
		case n == math.MinInt:
			c.perPage = math.MaxInt
		case n < -1:
			c.perPage = -n
		default:
			c.perPage = n
		}
	}

	if v, ok := params[posts.ParamPaged]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return c, fmt.Errorf("%w %s: %v", ErrInvalidParameter, posts.ParamPaged, err)
		}
		c.page = max(n, 1)
	}

	if v, ok := params[posts.ParamOrderBy]; ok {
		s, err := cast.ToStringE(v)
		if err != nil {
			return c, fmt.Errorf("%w %s: %v", ErrInvalidParameter, posts.ParamOrderBy, err)
		}
		// unknown fields fall back to date ordering
		switch s {
		case "title", "ID", "menu_order", "date":
			c.orderBy = s
		}
	}

	if v, ok := params[posts.ParamOrder]; ok {
		s, err := cast.ToStringE(v)
		if err != nil {
			return c, fmt.Errorf("%w %s: %v", ErrInvalidParameter, posts.ParamOrder, err)
		}
		c.desc = !strings.EqualFold(s, "ASC")
	}

	return c, nil
}

// stringList accepts a single value or a list; "any" means no restriction
func stringList(key string, v any) ([]string, error) {
	var list []string
	switch tv := v.(type) {
	case string:
		list = []string{tv}
	default:
		var err error
		if list, err = cast.ToStringSliceE(v); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrInvalidParameter, key, err)
		}
	}

	if slices.Contains(list, anyValue) {
		return nil, nil
	}
	return list, nil
}

// match returns the posts meeting the type and status restrictions, ordered
func (c criteria) match(all []*posts.Post) []*posts.Post {
	var out []*posts.Post
	for _, p := range all {
		if c.types != nil && !slices.Contains(c.types, p.Type) {
			continue
		}
		if c.statuses != nil && !slices.Contains(c.statuses, p.Status) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b *posts.Post) int {
		var r int
		switch c.orderBy {
		case "title":
			r = strings.Compare(a.Title, b.Title)
		case "ID":
			r = cmp.Compare(a.ID, b.ID)
		case "menu_order":
			r = cmp.Compare(a.MenuOrder, b.MenuOrder)
		default:
			r = a.Date.Compare(b.Date)
		}
		if c.desc {
			return -r
		}
		return r
	})

	return out
}

// paginate cuts the requested page out of matches and reports the page count
func (c criteria) paginate(matches []*posts.Post) ([]*posts.Post, int) {
	found := len(matches)
	if c.perPage == -1 {
		if found == 0 {
			return nil, 0
		}
		return matches, 1
	}

	if found == 0 {
		return nil, 0
	}

	perPage := min(c.perPage, found)
	pages := found / perPage
	if found%perPage != 0 {
		pages++
	}
	if c.page > pages {
		return nil, pages
	}

	start := (c.page - 1) * perPage
	end := start + min(perPage, found-start)

	return matches[start:end], pages
}
