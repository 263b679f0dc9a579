// Package models defines the catalogue table and the enrichment policy
// applied when fetched metadata is merged into a stored entry.
package models
