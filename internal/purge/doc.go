// Package purge finds sentences in a corpus that resemble a query and removes
// them until none are left.
//
// Searcher ranks sentences by gestalt similarity against the query. Remover
// deletes content either by exact sentence text or by regular expression.
// Driver runs the similarity loop as an explicit state machine:
//
//	SEARCHING --no match--> CONVERGED
//	SEARCHING --match-----> REMOVING
//	REMOVING  --changed---> SEARCHING
//	REMOVING  --unchanged-> STALLED
//
// Every successful removal deletes at least one rune from the corpus, so the
// loop ends after at most "initial corpus size" cycles. The driver still
// enforces an iteration cap in case segmentation and exact deletion disagree.
//
// Regex removal is a single global substitution per file and needs no loop.
// Patterns use RE2 syntax.
package purge
