// Package posts sequences access to post query results produced by a host CMS.
package posts

import "time"

// Post is a single content item as materialized by the host
type Post struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Author    int64     `json:"author"`
	MenuOrder int       `json:"menu_order"`
	Date      time.Time `json:"date"`
	Modified  time.Time `json:"modified"`
}

// Query parameter keys understood by hosts
const (
	ParamPostType   = "post_type"
	ParamPostStatus = "post_status"
	ParamPerPage    = "posts_per_page"
	ParamPaged      = "paged"
	ParamOrderBy    = "orderby"
	ParamOrder      = "order"
)

// Parameters is the query configuration handed to the host
type Parameters map[string]any

// Clone returns a shallow copy of p
func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
