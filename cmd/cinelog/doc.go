// Command cinelog is a personal movie catalog. It looks movies up on TMDB,
// keeps ratings and reviews in a local SQLite database, maintains a
// best-first ranking, and exports the catalog as CSV.
package main
