// Package metadata implements the outbound client for the Jikan (MyAnimeList)
// API.
//
// Fetch issues GET {base}/anime/{id} or GET {base}/manga/{id} and converts the
// loosely typed JSON payload into a Metadata value. It never panics and never
// retries anything but HTTP 429:
//
//   - 200 with data: *Metadata
//   - 404, or 200 without data: ErrNotFound
//   - 429: retried with linear backoff (attempt x backoff step), then *FetchError
//   - anything else: *FetchError immediately
//
// One Client must be shared by every caller in the process, because the
// limiter that spaces calls lives on the Client.
package metadata
