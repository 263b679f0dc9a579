// Package catalog owns the shared catalogue of titles.
//
// # Store
//
// Store is the data-access layer: bulk lookup by external id in one IN query,
// race-safe creation (a unique violation on external_id rolls back to a
// savepoint and re-reads the winner's row), search, facets and the Bayesian
// ranking.
//
// # Ranking
//
// The weighted score blends an entry's own score R over v votes with the
// table-wide mean C using a vote threshold m:
//
//	WS = v/(v+m)*R + m/(v+m)*C
//
// Entries with fewer than m votes are excluded from ranked listings.
//
// # HTTP Endpoints
//
//   - GET /catalog/search : filtered, sorted, paginated search.
//   - GET /catalog/filters : distinct filter values (cached).
//   - GET /catalog/top : ranked listing, optionally by tag or year (cached).
//   - GET /catalog/:id : one entry.
//   - POST /catalog : administrative creation.
package catalog
