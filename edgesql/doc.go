// Package edgesql is an adapter for stateless SQL-over-HTTP services: each
// statement is one POST round trip carrying {sql, params} and returning the
// rows as JSON.
//
// Capability profile: neither transactions nor batches. Transaction calls
// fail fast with FeatureNotSupportedError, and ExecuteBatch degrades to the
// sequential tier, where earlier statements stay applied when a later one
// fails. HTTP 429 and 503 responses keep their status codes on QueryError so
// they stay centrally classifiable as retryable.
//
// The adapter renders placeholders in $n form, matching the Postgres-style
// services this protocol fronts.
//
//	db := driver.New(edgesql.NewAdapter(edgesql.Config{
//	    Endpoint: "https://edge.example.com/v1/query",
//	    APIKey:   os.Getenv("EDGE_API_KEY"),
//	}))
package edgesql
