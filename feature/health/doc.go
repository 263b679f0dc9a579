// Package health reports whether the service can do its job.
//
// GET /health pings the database, compares the catalogue and list tables
// with the GORM models (missing columns and pinned types) and checks that the
// import archive bucket exists. An unreachable database answers 503; schema
// drift or storage trouble answer 200 with status "degraded".
package health
