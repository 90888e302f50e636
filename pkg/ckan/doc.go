// Package ckan provides types, interfaces, and helpers for working with a
// CKAN-style open-data catalog API.
//
// # Overview
//
// The ckan package defines the envelope and record types used by CKAN action
// endpoints, the interfaces for resource-oriented clients (PackagesClient,
// OrganizationsClient, GroupsClient, TagsClient), the query builder for the
// catalog's filter-query dialect, the pagination aggregator, and the response
// normalizer that flattens heterogeneous catalog records into uniform result
// tables. A concrete implementation of the client interfaces is provided by
// the ckanclient package, which wires configuration, the rate-limited
// transport, and caching. Most consumers should import ckanclient to
// construct a client and then interact with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/opendata-io/ckan-client/pkg/ckan"
//	  "github.com/opendata-io/ckan-client/pkg/ckanclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := ckanclient.New(&ckan.Config{BaseURL: "https://catalog.data.gov"})
//	  if err != nil { log.Fatal(err) }
//
//	  query := ckan.NewSearchQuery().
//	    WithKeyword("climate").
//	    WithOrganization("noaa-gov").
//	    WithTags("health")
//	  table, err := cli.Packages().Search(ctx, query, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = table
//	}
//
// # Queries and pagination
//
// SearchQuery composes the free-text keyword and the AND-joined field:value
// filter-query the API expects. FetchAllPages drives an offset-paginated
// endpoint to completion, honoring the backend's reported count and stopping
// on short or empty pages.
//
// # Errors
//
// Transport-level failures surface as *TransportError after the retry budget
// is exhausted. Application-level failures (envelope success=false) are never
// raised from list, search, or detail paths; they are encoded in the shape of
// the returned table (empty or partial). A pagination run that exceeds its
// page ceiling returns *ProtocolError.
//
// # Caching
//
// A pluggable Cache abstraction backs the client's listing cache. The memory
// backend is the default; a NATS JetStream KV backend is available for
// processes that want fetch results shared across restarts.
package ckan
