// Package paginate turns a page token from the query string into limit/offset
// bounds and wraps a page of records in the length-aware paginator payload the
// front end renders (current page, totals, navigation URLs and page links).
package paginate

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
)

// PageParam is the query parameter carrying the requested page number.
const PageParam = "page"

// onEachSide is the number of page links shown on each side of the current page
// once the page count is large enough to need a window.
const onEachSide = 3

// Request describes which slice of a collection to fetch.
type Request struct {
	Page    int
	PerPage int
}

// FromRequest reads the page token from r. A missing, malformed, or
// non-positive page yields the first page. Pages whose offset would not fit
// in an int are capped at MaxPage.
func FromRequest(r *http.Request, perPage int) Request {
	page := 1
	if raw := r.URL.Query().Get(PageParam); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = min(n, MaxPage(perPage))
		}
	}
	return Request{Page: page, PerPage: perPage}
}

// MaxPage is the largest page number whose offset fits in an int.
func MaxPage(perPage int) int {
	if perPage <= 0 {
		return math.MaxInt
	}
	return math.MaxInt / perPage
}

// Limit is the maximum number of records to fetch.
func (r Request) Limit() int {
	return r.PerPage
}

// Offset is the number of records to skip.
func (r Request) Offset() int {
	return (r.Page - 1) * r.PerPage
}

// Link is one entry of the page navigation.
type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// Page is a paginated sequence of records.
type Page[T any] struct {
	CurrentPage  int     `json:"current_page"`
	Data         []T     `json:"data"`
	FirstPageURL string  `json:"first_page_url"`
	From         *int    `json:"from"`
	LastPage     int     `json:"last_page"`
	LastPageURL  string  `json:"last_page_url"`
	Links        []Link  `json:"links"`
	NextPageURL  *string `json:"next_page_url"`
	Path         string  `json:"path"`
	PerPage      int     `json:"per_page"`
	PrevPageURL  *string `json:"prev_page_url"`
	To           *int    `json:"to"`
	Total        int     `json:"total"`
}

// New builds a Page from the fetched items and the collection total.
// path is the collection URL without query string.
func New[T any](items []T, total int, req Request, path string) Page[T] {
	if items == nil {
		items = []T{}
	}

	lastPage := 1
	if req.PerPage > 0 && total > 0 {
		lastPage = (total + req.PerPage - 1) / req.PerPage
	}

	p := Page[T]{
		CurrentPage:  req.Page,
		Data:         items,
		FirstPageURL: pageURL(path, 1),
		LastPage:     lastPage,
		LastPageURL:  pageURL(path, lastPage),
		Path:         path,
		PerPage:      req.PerPage,
		Total:        total,
	}

	if len(items) > 0 {
		from := req.Offset() + 1
		to := req.Offset() + len(items)
		p.From = &from
		p.To = &to
	}
	if req.Page > 1 {
		prev := pageURL(path, req.Page-1)
		p.PrevPageURL = &prev
	}
	if req.Page < lastPage {
		next := pageURL(path, req.Page+1)
		p.NextPageURL = &next
	}
	p.Links = links(path, req.Page, lastPage, p.PrevPageURL, p.NextPageURL)

	return p
}

func links(path string, current, last int, prev, next *string) []Link {
	out := []Link{{URL: prev, Label: "&laquo; Previous"}}
	for _, n := range window(current, last) {
		if n == 0 {
			out = append(out, Link{Label: "..."})
			continue
		}
		u := pageURL(path, n)
		out = append(out, Link{URL: &u, Label: strconv.Itoa(n), Active: n == current})
	}
	return append(out, Link{URL: next, Label: "Next &raquo;"})
}

// window returns the page numbers to link, with 0 marking an elided gap.
// Small page counts are listed in full; larger ones keep the first two, the
// last two, and onEachSide pages around the current page.
func window(current, last int) []int {
	pages := make([]int, 0, last)
	if last < onEachSide*2+8 {
		for n := 1; n <= last; n++ {
			pages = append(pages, n)
		}
		return pages
	}

	start := max(current-onEachSide, 3)
	end := min(current+onEachSide, last-2)

	pages = append(pages, 1, 2)
	if start > 3 {
		pages = append(pages, 0)
	}
	for n := start; n <= end; n++ {
		pages = append(pages, n)
	}
	if end < last-2 {
		pages = append(pages, 0)
	}
	return append(pages, last-1, last)
}

func pageURL(path string, page int) string {
	q := url.Values{}
	q.Set(PageParam, strconv.Itoa(page))
	return path + "?" + q.Encode()
}
