package check

import "strings"

// closest returns the registered id nearest to id by edit distance, or ""
// when nothing is close enough to be a plausible typo.
func (r *Registry) closest(id string) string {
	best, bestDistance := "", len([]rune(id))/2+1

	lowered := strings.ToLower(id)

	for _, descriptor := range r.ordered {
		d := editDistance(lowered, strings.ToLower(descriptor.ID))
		if d < bestDistance {
			best, bestDistance = descriptor.ID, d
		}
	}

	return best
}

// editDistance is the Levenshtein distance between a and b in runes, kept
// in a single column of O(len(a)) space.
func editDistance(a, b string) int {
	s1, s2 := []rune(a), []rune(b)

	if len(s2) == 0 {
		return len(s1)
	}

	column := make([]int, len(s1)+1)
	for idx := range column {
		column[idx] = idx
	}

	for col, r2 := range s2 {
		column[0] = col + 1
		lastDiag := col

		for row, r1 := range s1 {
			oldDiag := column[row+1]

			cost := 1
			if r1 == r2 {
				cost = 0
			}

			column[row+1] = min(column[row+1]+1, column[row]+1, lastDiag+cost)
			lastDiag = oldDiag
		}
	}

	return column[len(s1)]
}
