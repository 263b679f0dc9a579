// Package refresh keeps catalogue metadata current.
//
// A pass fetches every entry with an external id through the shared
// metadata client and applies the enrichment rules: gaps are filled and
// volatile figures (score, popularity, votes, members, favorites, status,
// length, end date) take the fresh values. Failures are logged and counted.
//
// Passes run from the refresh command or, when refresh.interval_hours is
// set, on a gocron schedule inside the server in singleton mode.
package refresh
