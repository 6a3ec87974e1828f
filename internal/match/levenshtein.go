package match

// Distance computes the Levenshtein distance between a and b: the minimum
// number of single-byte insertions, deletions or substitutions turning one
// into the other.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	// Two rows of the edit matrix, indexed by position in the shorter string.
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Closest returns the candidate nearest to word whose distance does not
// exceed maxDistance. Ties go to the earlier candidate. It returns false when
// no candidate is close enough.
func Closest(word string, candidates []string, maxDistance int) (string, bool) {
	best, bestDist := "", maxDistance+1

	for _, c := range candidates {
		if d := Distance(word, c); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist <= maxDistance
}
