// Package projectstore persists projects and their edit configuration trees
// in SQLite. The tree is stored as JSON but only crosses the JSON boundary
// here; everything above works with the typed tree.
package projectstore
