// Package cache provides a small in-process TTL cache for values that are
// expensive to compute from the database, such as search facets and ranked
// listings. Builds are deduplicated with singleflight to prevent stampedes.
//
// # Usage
//
//	facets := cache.New[*Facets](5 * time.Minute)
//	f, err := facets.GetOrBuild(ctx, "facets", loadFacets)
//
//	// after writes that change the underlying data
//	facets.InvalidateAll()
package cache
