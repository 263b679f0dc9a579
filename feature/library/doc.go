// Package library owns each user's list of tracked titles.
//
// Every list entry belongs to exactly one (user, catalogue entry) pair.
// Mutations check ownership first: touching another user's entry returns
// ErrForbidden. Progress is clamped to the catalogue entry's length when it
// is known, and completing an entry fills progress to that length.
//
// Store implements catalog.Membership so catalogue search can flag the
// titles already on the acting user's list.
//
// # HTTP Endpoints
//
// All routes require the X-User-ID header.
//
//   - GET /library : the list with facets, optional ?status= filter.
//   - GET /library/stats : per-status counts, mean score, total progress.
//   - POST /library : add a catalogue entry.
//   - PATCH /library/:id : change status, progress, score or notes.
//   - DELETE /library/:id : remove an entry.
package library
