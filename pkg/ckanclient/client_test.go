package ckanclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-io/ckan-client/pkg/ckan"
	"github.com/opendata-io/ckan-client/pkg/ckanclient"
)

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		expected string
		wantErr  error
	}{
		{
			name:     "bare host",
			endpoint: "catalog.data.gov",
			expected: "https://catalog.data.gov/api/3/action",
		},
		{
			name:     "host with scheme",
			endpoint: "https://catalog.data.gov",
			expected: "https://catalog.data.gov/api/3/action",
		},
		{
			name:     "trailing slash",
			endpoint: "https://catalog.data.gov/",
			expected: "https://catalog.data.gov/api/3/action",
		},
		{
			name:     "full action URL passes through",
			endpoint: "https://catalog.data.gov/api/3/action",
			expected: "https://catalog.data.gov/api/3/action",
		},
		{
			name:     "http scheme preserved",
			endpoint: "http://localhost:5000",
			expected: "http://localhost:5000/api/3/action",
		},
		{
			name:     "empty",
			endpoint: "   ",
			wantErr:  ckan.ErrEndpointRequired,
		},
		{
			name:     "scheme without host",
			endpoint: "https://",
			wantErr:  ckan.ErrNoHostInURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			endpoint, err := ckanclient.NormalizeEndpoint(tt.endpoint)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, endpoint)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := ckanclient.New(nil)
		require.ErrorIs(t, err, ckan.ErrConfigRequired)
	})

	t.Run("empty config falls back to the default catalog", func(t *testing.T) {
		t.Parallel()

		client, err := ckanclient.New(&ckan.Config{})
		require.NoError(t, err)
		assert.NotNil(t, client.Packages())
		assert.NotNil(t, client.Organizations())
		assert.NotNil(t, client.Groups())
		assert.NotNil(t, client.Tags())
	})

	t.Run("caller config is not mutated", func(t *testing.T) {
		t.Parallel()

		cfg := &ckan.Config{BaseURL: "catalog.data.gov", PageSize: 5000}

		_, err := ckanclient.New(cfg)
		require.NoError(t, err)
		assert.Equal(t, "catalog.data.gov", cfg.BaseURL)
		assert.Equal(t, 5000, cfg.PageSize)
	})

	t.Run("invalid endpoint fails", func(t *testing.T) {
		t.Parallel()

		_, err := ckanclient.New(&ckan.Config{BaseURL: "https://"})
		require.ErrorIs(t, err, ckan.ErrNoHostInURL)
	})
}

func TestNew_PageSizeClamp(t *testing.T) {
	t.Parallel()

	var requestedRows atomic.Value

	mux := http.NewServeMux()
	mux.HandleFunc("/api/3/action/package_search", func(writer http.ResponseWriter, request *http.Request) {
		requestedRows.Store(request.URL.Query().Get("rows"))
		_, _ = writer.Write([]byte(`{"success": true, "result": {"count": 0, "results": []}}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := ckanclient.New(&ckan.Config{BaseURL: server.URL, PageSize: 5000})
	require.NoError(t, err)

	_, err = client.Packages().Search(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "1000", requestedRows.Load(), "page size above the API ceiling is clamped")
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	client, err := ckanclient.NewWithEndpoint("demo.ckan.org")
	require.NoError(t, err)
	assert.NotNil(t, client.Packages())
}
