package rules

// CanonicalPair orders two user ids so a match is stored exactly once per
// unordered pair.
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// SamePair reports whether two ordered pairs refer to the same unordered pair.
func SamePair(a1, b1, a2, b2 int64) bool {
	ca1, cb1 := CanonicalPair(a1, b1)
	ca2, cb2 := CanonicalPair(a2, b2)
	return ca1 == ca2 && cb1 == cb2
}
