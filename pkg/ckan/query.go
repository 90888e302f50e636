package ckan

import (
	"net/url"
	"strconv"
	"strings"
)

// SearchQuery composes a package_search request: a free-text keyword, a raw
// filter-query, and organization/tag filters expressed in the API's
// field:value dialect. No validation of names or tags happens here; callers
// pre-validate against known names where that matters.
type SearchQuery struct {
	Keyword      string
	FilterQuery  string
	Organization string
	Tags         []string
	Rows         int
}

// NewSearchQuery creates an empty search query.
func NewSearchQuery() *SearchQuery {
	return &SearchQuery{}
}

// WithKeyword sets the free-text query.
func (q *SearchQuery) WithKeyword(keyword string) *SearchQuery {
	q.Keyword = keyword

	return q
}

// WithFilterQuery sets a raw filter-query. Derived organization/tag filters
// are appended to it with AND rather than overwriting it.
func (q *SearchQuery) WithFilterQuery(fq string) *SearchQuery {
	q.FilterQuery = fq

	return q
}

// WithOrganization filters results to one organization.
func (q *SearchQuery) WithOrganization(name string) *SearchQuery {
	q.Organization = name

	return q
}

// WithTags appends tag filters; multiple tags are ANDed together.
func (q *SearchQuery) WithTags(tags ...string) *SearchQuery {
	q.Tags = append(q.Tags, tags...)

	return q
}

// WithRows sets the page size requested per request.
func (q *SearchQuery) WithRows(rows int) *SearchQuery {
	q.Rows = rows

	return q
}

// BuildFilterQuery renders the combined filter-query string: the raw
// filter-query first, then organization:<name>, then one tags:<tag> term per
// tag, all joined with AND. Order is stable for a fixed input order.
func (q *SearchQuery) BuildFilterQuery() string {
	terms := make([]string, 0, len(q.Tags)+2)

	if q.FilterQuery != "" {
		terms = append(terms, q.FilterQuery)
	}

	if q.Organization != "" {
		terms = append(terms, "organization:"+q.Organization)
	}

	for _, tag := range q.Tags {
		terms = append(terms, "tags:"+tag)
	}

	return strings.Join(terms, " AND ")
}

// ToValues converts the query to package_search request parameters.
func (q *SearchQuery) ToValues() url.Values {
	values := url.Values{}

	if q.Keyword != "" {
		values.Set("q", q.Keyword)
	}

	if fq := q.BuildFilterQuery(); fq != "" {
		values.Set("fq", fq)
	}

	if q.Rows > 0 {
		values.Set("rows", strconv.Itoa(q.Rows))
	}

	return values
}

// ListParams holds the parameters of the listing endpoints
// (organization_list, group_list, tag_list, package_list).
type ListParams struct {
	AllFields bool
	Limit     int
	Offset    int
}

// ToValues converts the parameters to request query values.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}

	if p.AllFields {
		values.Set("all_fields", "true")
	}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}

	return values
}
