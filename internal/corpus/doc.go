// Package corpus exposes the set of text files a purge run operates on.
//
// A Corpus is discovered once from a single directory (non-recursive, files
// matching a glob such as "*.txt", lexical name order) and then read and
// rewritten through a Store. Content is never cached: every Read goes back to
// the store so callers always observe the effect of earlier writes. Invalid
// UTF-8 is tolerated by dropping or replacing the offending bytes.
//
// The Overlay store keeps writes in memory for dry runs, and RunLock guards a
// directory against concurrent purge processes.
package corpus
