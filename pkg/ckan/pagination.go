package ckan

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/opendata-io/ckan-client/internal/constants"
)

// PageClient fetches a single page of an offset-paginated endpoint. The
// concrete client's transport implements it; tests substitute fakes.
type PageClient interface {
	FetchPage(ctx context.Context, path string, params url.Values) (*Envelope, error)
}

// PaginationOptions tunes an aggregated fetch.
type PaginationOptions struct {
	// PageSize is the number of rows requested per page.
	PageSize int

	// MaxPages bounds the number of page requests. Exceeding it returns a
	// ProtocolError; without the ceiling a backend that never reports a
	// count and never shortens its last page would loop forever.
	MaxPages int

	// Progress, when set, is invoked after every page with the number of
	// records accumulated so far and the backend's reported total (-1
	// until known).
	Progress ProgressFunc
}

// DefaultPaginationOptions returns the default pagination configuration.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: constants.DefaultPageSize,
		MaxPages: constants.DefaultMaxPages,
	}
}

// FetchAllPages assembles a complete result set from an offset-paginated
// endpoint by issuing page requests with incrementing offsets.
//
// An envelope with success=false stops the fetch and returns whatever was
// accumulated: a failed page does not erase prior pages, and application-
// level failures are not retried. Termination is checked in order: reported
// count reached, then short page, then empty page on the next request.
// Transport failures propagate unchanged.
func FetchAllPages(ctx context.Context, client PageClient, path string, base url.Values, opts *PaginationOptions) ([]json.RawMessage, error) {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = constants.DefaultMaxPages
	}

	var accumulated []json.RawMessage

	offset := 0
	total := -1

	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, &ProtocolError{Endpoint: path, Pages: page}
		}

		params := cloneValues(base)
		params.Set("rows", strconv.Itoa(pageSize))
		params.Set("start", strconv.Itoa(offset))

		envelope, err := client.FetchPage(ctx, path, params)
		if err != nil {
			return nil, err
		}

		if !envelope.Success {
			return accumulated, nil
		}

		extracted := envelope.Page()
		if len(extracted.Records) == 0 {
			return accumulated, nil
		}

		accumulated = append(accumulated, extracted.Records...)

		if extracted.HasCount {
			total = extracted.Count
		}

		if opts.Progress != nil {
			opts.Progress(len(accumulated), total)
		}

		if total >= 0 && len(accumulated) >= total {
			return accumulated, nil
		}

		if len(extracted.Records) < pageSize {
			return accumulated, nil
		}

		offset += pageSize
	}
}

func cloneValues(values url.Values) url.Values {
	cloned := make(url.Values, len(values)+2)

	for key, vals := range values {
		cloned[key] = append([]string(nil), vals...)
	}

	return cloned
}
