package leaderboard

import "sort"

type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeUpdated  Outcome = "updated"
	OutcomeIgnored  Outcome = "ignored"
)

// Merge applies candidate to board: a same-name entry is replaced only by
// a strictly higher score, an unknown name is appended. The input slice is
// left untouched. Ordering and size are Normalize's job.
func Merge(board Board, candidate Entry) (Board, Outcome) {
	out := make(Board, len(board), len(board)+1)
	copy(out, board)

	for i, e := range out {
		if e.Name != candidate.Name {
			continue
		}
		if candidate.Score > e.Score {
			out[i] = candidate
			return out, OutcomeUpdated
		}
		return out, OutcomeIgnored
	}

	return append(out, candidate), OutcomeInserted
}

// Normalize sorts by score descending, keeping the existing order of equal
// scores, and truncates to MaxEntries. The result is never nil.
func Normalize(board Board) Board {
	out := make(Board, len(board))
	copy(out, board)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}
