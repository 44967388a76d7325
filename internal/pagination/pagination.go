// Package pagination turns a cursor, a page size and a field selector into a
// bounded page of records with navigation links.
//
// End-of-collection is signalled by a short page: a page with fewer records
// than the requested limit carries no next cursor. A page of exactly limit
// records that happens to drain the collection therefore still yields a next
// link whose follow-up page is empty. Known limitation: a record inserted
// exactly at a page boundary between two requests can be missed by a client
// chaining cursors; a monotonic per-record sequence number would close that
// window but is out of scope here.
package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"resource-catalog-api/internal/apierr"
	"resource-catalog-api/internal/store"
)

// Lister is the read-side view of the resource store the engine consumes.
type Lister interface {
	List(afterID string, limit int) []store.Record
	Len() int
}

// Limits bounds the page size. A request without a limit takes Default; a
// request outside [1, Max] is rejected.
type Limits struct {
	Default int
	Max     int
}

// Request carries the caller's pagination parameters as received at the
// boundary. RawLimit is the unparsed query value; empty means "use default".
type Request struct {
	Cursor   string
	RawLimit string
	Fields   []string
	BasePath string
}

// Links holds the navigation links for a page. Next is omitted entirely when
// no further records may exist.
type Links struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
}

// Meta carries page metadata.
type Meta struct {
	TotalCount int `json:"total_count"`
}

// Page is the bounded view returned to the boundary.
type Page struct {
	Data  []map[string]any `json:"data"`
	Links Links            `json:"links"`
	Meta  Meta             `json:"meta"`
}

// ParseFields splits a comma-separated field selector, dropping empty parts.
func ParseFields(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}

func resolveLimit(raw string, limits Limits) (int, error) {
	if raw == "" {
		return limits.Default, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.InvalidArgument("limit must be an integer, got %q", raw)
	}
	if limit < 1 || limit > limits.Max {
		return 0, apierr.InvalidArgument("limit must be between 1 and %d, got %d", limits.Max, limit)
	}
	return limit, nil
}

// BuildPage resolves the page size, reads one page from the lister, projects
// each record through the field selector and assembles the navigation links.
// It never mutates the lister.
func BuildPage(l Lister, req Request, limits Limits) (Page, error) {
	limit, err := resolveLimit(req.RawLimit, limits)
	if err != nil {
		return Page{}, err
	}

	records := l.List(req.Cursor, limit)

	next := ""
	if len(records) == limit && len(records) > 0 {
		next = records[len(records)-1].ID
	}

	data := make([]map[string]any, 0, len(records))
	for i := range records {
		data = append(data, project(&records[i], req.Fields))
	}

	page := Page{
		Data: data,
		Links: Links{
			Self: link(req.BasePath, req.Cursor, limit, req.Fields),
		},
		Meta: Meta{TotalCount: l.Len()},
	}
	if next != "" {
		page.Links.Next = link(req.BasePath, next, limit, req.Fields)
	}
	return page, nil
}

// project reduces a record's wire map to the selected fields. Unknown field
// names are silently ignored; an empty selector keeps the full record.
func project(rec *store.Record, fields []string) map[string]any {
	full := rec.Map()
	if len(fields) == 0 {
		return full
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := full[f]; ok {
			out[f] = v
		}
	}
	return out
}

func link(basePath, cursor string, limit int, fields []string) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if len(fields) > 0 {
		q.Set("fields", strings.Join(fields, ","))
	}
	return basePath + "?" + q.Encode()
}
