// Package textutil provides the text primitives the purge engine is built on:
// punctuation-based sentence segmentation and a gestalt similarity score.
//
// Segmentation splits on '.', '!' or '?' followed by whitespace. It does not
// special-case abbreviations or decimal numbers, so "Dr. Smith" yields two
// sentences.
//
// Similarity follows the Ratcliff/Obershelp approach: find the longest
// contiguous matching block, recurse on both sides, and score the total block
// length against the combined length of the inputs. Comparisons are done on
// runes so multi-byte characters count once.
package textutil
