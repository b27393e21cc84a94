package textutil

import "sort"

const autoJunkMinLength = 200

// Block is a run of Size equal runes starting at A in the query and B in the
// candidate.
type Block struct {
	A    int
	B    int
	Size int
}

// Matcher scores a query against candidate strings.
//
// The zero value is ready to use. With AutoJunk set, runes that make up more
// than 1% of a candidate of at least 200 runes may not start a matching block,
// which speeds up long comparisons at the cost of Ratio(a, a) dropping below 1
// for highly repetitive input.
type Matcher struct {
	AutoJunk bool
}

// Similarity returns the gestalt similarity of candidate to query in [0, 1].
func Similarity(query, candidate string) float64 {
	return Matcher{}.Ratio(query, candidate)
}

// Ratio returns 2*M/T where M is the number of runes in matching blocks and T
// the combined rune count. Two empty strings score 1.
func (m Matcher) Ratio(query, candidate string) float64 {
	a := []rune(query)
	b := []rune(candidate)
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	matched := 0
	for _, block := range m.matchingBlocks(a, b) {
		matched += block.Size
	}
	return 2 * float64(matched) / float64(total)
}

// MatchingBlocks returns the non-overlapping matching blocks between query and
// candidate ordered by position, with adjacent blocks merged. Offsets are rune
// offsets.
func (m Matcher) MatchingBlocks(query, candidate string) []Block {
	return m.matchingBlocks([]rune(query), []rune(candidate))
}

func (m Matcher) matchingBlocks(a, b []rune) []Block {
	idx := newCandidateIndex(b, m.AutoJunk)

	type span struct{ alo, ahi, blo, bhi int }
	pending := []span{{0, len(a), 0, len(b)}}
	var blocks []Block
	for len(pending) > 0 {
		s := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		match := idx.longestMatch(a, s.alo, s.ahi, s.blo, s.bhi)
		if match.Size == 0 {
			continue
		}
		blocks = append(blocks, match)
		if s.alo < match.A && s.blo < match.B {
			pending = append(pending, span{s.alo, match.A, s.blo, match.B})
		}
		if match.A+match.Size < s.ahi && match.B+match.Size < s.bhi {
			pending = append(pending, span{match.A + match.Size, s.ahi, match.B + match.Size, s.bhi})
		}
	}

	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].A != blocks[j].A {
			return blocks[i].A < blocks[j].A
		}
		return blocks[i].B < blocks[j].B
	})

	merged := blocks[:0]
	for _, block := range blocks {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.A+last.Size == block.A && last.B+last.Size == block.B {
				last.Size += block.Size
				continue
			}
		}
		merged = append(merged, block)
	}
	return merged
}

// candidateIndex maps each rune of the candidate to its ascending positions.
type candidateIndex struct {
	b         []rune
	positions map[rune][]int
}

func newCandidateIndex(b []rune, autoJunk bool) *candidateIndex {
	positions := make(map[rune][]int)
	for j, r := range b {
		positions[r] = append(positions[r], j)
	}
	if autoJunk && len(b) >= autoJunkMinLength {
		limit := len(b)/100 + 1
		for r, js := range positions {
			if len(js) > limit {
				delete(positions, r)
			}
		}
	}
	return &candidateIndex{b: b, positions: positions}
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] inside the given
// bounds. Among equally long blocks it returns the one that starts earliest in
// a, then earliest in b.
func (ix *candidateIndex) longestMatch(a []rune, alo, ahi, blo, bhi int) Block {
	b := ix.b
	besti, bestj, bestSize := alo, blo, 0

	runLen := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range ix.positions[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := runLen[j-1] + 1
			next[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		runLen = next
	}

	// Popular runes cannot start a block but may extend one.
	for besti > alo && bestj > blo && a[besti-1] == b[bestj-1] {
		besti, bestj, bestSize = besti-1, bestj-1, bestSize+1
	}
	for besti+bestSize < ahi && bestj+bestSize < bhi && a[besti+bestSize] == b[bestj+bestSize] {
		bestSize++
	}
	return Block{A: besti, B: bestj, Size: bestSize}
}
