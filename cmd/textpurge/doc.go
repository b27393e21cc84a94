// Package main hosts the textpurge CLI entrypoint and command graph.
//
// The root command purges a directory: given a query and a directory it
// either removes every sentence similar to the query, repeating until none
// is left, or with --regex deletes every match of a pattern in one pass.
// Subcommands expose a read-only ranked search, the run journal, and
// configuration scaffolding.
//
// Keep this package lean: behaviour lives in the internal packages and the
// commands here only resolve configuration, wire dependencies, and render
// results.
package main
