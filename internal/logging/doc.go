// Package logging constructs the slog logger used across cinelog.
//
// Two formats are supported: a console handler that prints compact
// timestamp/level/key=value lines, and a JSON handler for machine
// consumption. Level and format come from configuration.
package logging
