package validation

import "testing"

func TestNormalizeIdempotent(t *testing.T) {
	cases := []string{
		"  Los Angeles Lakers! ",
		"WHO won?",
		"final-score: 100-95",
		"",
		"Ärger ums Café", // non-ascii stripped entirely
	}
	for _, c := range cases {
		once := Normalize(c)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %q: %q != %q", c, once, twice)
		}
	}
}

func TestNormalizeStripsPunctuation(t *testing.T) {
	got := Normalize("  Who WON the game?! ")
	if got != "who won the game" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestFuzzyMatchIdentity(t *testing.T) {
	th := DefaultThresholds()
	for _, s := range []string{"Lakers", "a", "Green Bay Packers"} {
		if got := th.FuzzyMatch(s, s); got != 1.0 {
			t.Fatalf("FuzzyMatch(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestFuzzyMatchDeterministic(t *testing.T) {
	th := DefaultThresholds()
	first := th.FuzzyMatch("Lakres", "Lakers")
	for i := 0; i < 10; i++ {
		if got := th.FuzzyMatch("Lakres", "Lakers"); got != first {
			t.Fatalf("FuzzyMatch not deterministic: %v != %v", got, first)
		}
	}
}

func TestFuzzyMatchContainment(t *testing.T) {
	th := DefaultThresholds()
	if got := th.FuzzyMatch("the Lakers won", "Lakers"); got != 0.9 {
		t.Fatalf("containment should score 0.9, got %v", got)
	}
}

func TestFuzzyMatchDisjoint(t *testing.T) {
	th := DefaultThresholds()
	if got := th.FuzzyMatch("zebra", "quarterback statistics"); got != 0 {
		t.Fatalf("disjoint strings should score 0, got %v", got)
	}
}

func TestMatchToOptionsEmpty(t *testing.T) {
	th := DefaultThresholds()
	got := th.MatchToOptions("anything", nil)
	if got.BestMatch != "" || got.Confidence != 0 {
		t.Fatalf("empty options should yield zero match, got %+v", got)
	}
}

func TestMatchToOptionsExactKeepsOriginalCase(t *testing.T) {
	th := DefaultThresholds()
	got := th.MatchToOptions("lakers", []string{"Lakers", "Celtics"})
	if got.BestMatch != "Lakers" || got.Confidence != 1.0 {
		t.Fatalf("want {Lakers 1.0}, got %+v", got)
	}
}

func TestMatchToOptionsFuzzyCapped(t *testing.T) {
	th := DefaultThresholds()
	got := th.MatchToOptions("Lakerz", []string{"Lakers", "Celtics"})
	if got.BestMatch != "Lakers" {
		t.Fatalf("want best match Lakers, got %+v", got)
	}
	if got.Confidence > th.FuzzyCap {
		t.Fatalf("fuzzy confidence %v exceeds cap %v", got.Confidence, th.FuzzyCap)
	}
	if got.Confidence == 0 {
		t.Fatalf("near match should clear the similarity floor")
	}
}

func TestMatchToOptionsNoCandidateClearsFloor(t *testing.T) {
	th := DefaultThresholds()
	got := th.MatchToOptions("xyzzy", []string{"Manchester United", "Liverpool"})
	if got.BestMatch != "" || got.Confidence != 0 {
		t.Fatalf("expected zero match, got %+v", got)
	}
}
