// Package tmdb provides access to The Movie Database API for catalog
// enrichment: title search and details-by-id. It is treated as unreliable
// network I/O; every transport or non-2xx failure surfaces as an error and
// never results in a partially-populated catalog record.
package tmdb
