package rules

import "testing"

func TestCanonicalPairOrdersAscending(t *testing.T) {
	a, b := CanonicalPair(7, 3)
	if a != 3 || b != 7 {
		t.Fatalf("unexpected pair: got (%d, %d) want (3, 7)", a, b)
	}

	a, b = CanonicalPair(3, 7)
	if a != 3 || b != 7 {
		t.Fatalf("pair must not depend on argument order: got (%d, %d)", a, b)
	}
}

func TestSamePair(t *testing.T) {
	if !SamePair(1, 2, 2, 1) {
		t.Fatalf("(1,2) and (2,1) are the same unordered pair")
	}
	if SamePair(1, 2, 1, 3) {
		t.Fatalf("(1,2) and (1,3) are different pairs")
	}
}
