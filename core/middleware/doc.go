// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation, plus resolution of the acting user from the
//     X-User-ID header set by the upstream identity layer.
//   - rayid: tags every request with a RayID, exposed to handlers through
//     locals and to callers through the X-Ray-ID response header.
package middleware
