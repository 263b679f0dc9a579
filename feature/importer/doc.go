// Package importer reconciles MyAnimeList list exports into the catalogue
// and a user's list.
//
// # Stages
//
// An import runs these steps in order:
//
//  1. Parse the XML export. A malformed document, a root other than
//     <myanimelist>, a missing <myinfo> or no entries fails with
//     ErrDocumentFormat before anything is written.
//  2. Extract one external id per entry. Unusable ids and repeats of an id
//     are skipped.
//  3. Resolve every id against the catalogue in a single IN query.
//  4. Fetch metadata for each unknown id, one at a time in document order,
//     and create the entry. A failed fetch falls back to an entry built from
//     the document's own title, kind and length.
//  5. Fetch again for known entries missing image, synopsis or source, and
//     fill the gaps.
//  6. Find or create the user's list entry for each id and copy the
//     selected personal fields. Each list write runs under its own savepoint.
//  7. Commit everything as one transaction. A failed commit returns
//     ErrCommit and nothing is kept.
//
// The Result is returned in every case, including failures.
//
// # Archiving
//
// When an Archiver is set, the raw upload is stored in object storage before
// parsing. Archive failures are logged and never fail the import.
//
// # HTTP Endpoints
//
//   - POST /imports/mal : multipart upload with file, import_scores,
//     import_notes and import_dates.
package importer
