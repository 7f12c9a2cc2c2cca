// Package neows provides an HTTP client for NASA's NeoWs (Near Earth
// Object Web Service) API.
//
// # Overview
//
// The client supports the two read-only queries the tracker needs:
//
//   - GET /feed?api_key=K[&start_date=S][&end_date=E]: all NEOs with a
//     close approach inside a date range
//   - GET /neo/{id}?api_key=K: a single NEO by its reference id
//
// Only the top-level key set of each response is in scope for the UI,
// so both fetch methods return the ordered list of top-level field
// names rather than a decoded document. Values are streamed past with
// json.RawMessage so large feeds are never held in memory.
//
// # Request handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: neotrack/0.1
//   - Run under a bounded http.Client timeout (default 15 seconds);
//     the upstream service applies no timeout of its own, so expiry
//     surfaces as a transport error rather than an indefinite hang
//   - Return wrapped errors with context about what failed
//
// # Error handling
//
// A 404 maps to the sentinel ErrNotFound, checked by callers with
// errors.Is. Any other 4xx/5xx status, network failure, or malformed
// body is returned as a wrapped error, for example:
//
//   - "execute request: dial tcp: connection refused"
//   - "api neo/99999999 returned status 500"
//   - "decode response: unexpected EOF"
//
// # Date range semantics
//
// A DateRange field left empty is omitted from the query string
// entirely; the server then applies its own defaults (today for the
// start, start plus seven days for the end). Date strings are
// validated before they reach this package.
//
// # API key
//
// The key travels as a plain api_key query parameter. NASA publishes a
// shared rate-limited DEMO_KEY which the client falls back to when no
// key is configured.
//
// # Design rationale
//
// The package is intentionally minimal: no caching, no retries, no
// pagination, no mutations. Each flow performs exactly one fetch and
// renders the outcome immediately.
package neows
