package kalshi

import (
	"context"
	"iter"
)

// CursorParam is the query parameter carrying the pagination cursor.
const CursorParam = "cursor"

// Paged is implemented by list responses. NextCursor returns "" when the
// response is the last page.
type Paged[T any] interface {
	PageItems() []T
	NextCursor() string
}

// Pages returns a lazy sequence of the pages of a list endpoint. The first
// request is sent with req as given; each following request is identical
// except that the cursor from the previous page is substituted. Iteration
// stops after the first page without a cursor, on the first error (which
// is yielded), or when the consumer stops.
//
// Nothing is fetched until the sequence is ranged over, and ranging over
// it again starts from the first page.
func Pages[R Paged[T], T any](ctx context.Context, c *Client, route Route, req Request) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		cursor := ""
		for {
			pageReq := req
			if cursor != "" {
				pageReq.cursor = cursor
			}

			page, err := Execute[R](ctx, c, route, pageReq)
			if err != nil {
				yield(page, err)
				return
			}
			if !yield(page, nil) {
				return
			}

			cursor = page.NextCursor()
			if cursor == "" {
				return
			}
		}
	}
}

// Paginate is like Pages but yields the individual items. Items of a page
// are yielded before the next page is requested, so a failure on page n
// comes after every item of pages 1 through n-1.
func Paginate[R Paged[T], T any](ctx context.Context, c *Client, route Route, req Request) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for page, err := range Pages[R, T](ctx, c, route, req) {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.PageItems() {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// Collect drains seq. On error it returns the items received so far along
// with the error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Limit stops seq after n items. A non-positive n yields nothing.
func Limit[T any](seq iter.Seq2[T, error], n int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}
		count := 0
		for item, err := range seq {
			if !yield(item, err) || err != nil {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
