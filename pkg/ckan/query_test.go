package ckan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

func TestSearchQuery_BuildFilterQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    *ckan.SearchQuery
		expected string
	}{
		{
			name:     "empty query",
			query:    ckan.NewSearchQuery(),
			expected: "",
		},
		{
			name:     "organization only",
			query:    ckan.NewSearchQuery().WithOrganization("noaa-gov"),
			expected: "organization:noaa-gov",
		},
		{
			name:     "single tag",
			query:    ckan.NewSearchQuery().WithTags("health"),
			expected: "tags:health",
		},
		{
			name:     "organization and multiple tags",
			query:    ckan.NewSearchQuery().WithOrganization("noaa-gov").WithTags("health", "covid-19"),
			expected: "organization:noaa-gov AND tags:health AND tags:covid-19",
		},
		{
			name:     "raw filter query comes first",
			query:    ckan.NewSearchQuery().WithFilterQuery("res_format:CSV").WithOrganization("noaa-gov"),
			expected: "res_format:CSV AND organization:noaa-gov",
		},
		{
			name:     "keyword does not leak into the filter query",
			query:    ckan.NewSearchQuery().WithKeyword("climate").WithTags("environment"),
			expected: "tags:environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.query.BuildFilterQuery())
		})
	}
}

func TestSearchQuery_ToValues(t *testing.T) {
	t.Parallel()
	t.Run("full query", func(t *testing.T) {
		t.Parallel()

		values := ckan.NewSearchQuery().
			WithKeyword("water quality").
			WithOrganization("epa-gov").
			WithTags("rivers").
			WithRows(50).
			ToValues()

		assert.Equal(t, "water quality", values.Get("q"))
		assert.Equal(t, "organization:epa-gov AND tags:rivers", values.Get("fq"))
		assert.Equal(t, "50", values.Get("rows"))
	})

	t.Run("empty query produces no parameters", func(t *testing.T) {
		t.Parallel()

		values := ckan.NewSearchQuery().ToValues()
		assert.Empty(t, values)
	})

	t.Run("identical queries encode identically", func(t *testing.T) {
		t.Parallel()

		first := ckan.NewSearchQuery().WithKeyword("air").WithTags("ozone").ToValues()
		second := ckan.NewSearchQuery().WithKeyword("air").WithTags("ozone").ToValues()

		assert.Equal(t, first.Encode(), second.Encode())
	})
}

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	params := ckan.ListParams{AllFields: true, Limit: 25, Offset: 50}
	values := params.ToValues()

	assert.Equal(t, "true", values.Get("all_fields"))
	assert.Equal(t, "25", values.Get("limit"))
	assert.Equal(t, "50", values.Get("offset"))

	empty := ckan.ListParams{}
	assert.Empty(t, empty.ToValues())
}
