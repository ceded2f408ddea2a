// Package content loads the static vocabulary level files that seed the
// practice surfaces. Content is read-only reference data: the loader
// tags each item with its level, drops entries that fail validation, and
// treats a missing or malformed file as an empty level rather than a
// fatal error, so one bad file never takes the whole service down.
package content
