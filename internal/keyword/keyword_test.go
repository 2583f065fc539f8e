package keyword

import "testing"

func TestDetectNegationInWindow(t *testing.T) {
	found, status := Detect("the sec did not approve the filing today", "approve")
	if !found {
		t.Fatalf("expected keyword to be found")
	}
	if status != StatusNegated {
		t.Fatalf("expected negated, got %s", status)
	}
}

func TestDetectAffirmationInWindow(t *testing.T) {
	found, status := Detect("regulators confirm they will approve the etf", "etf")
	if !found || status != StatusAffirmed {
		t.Fatalf("expected found+affirmed, got %v %s", found, status)
	}
}

func TestDetectBareKeywordIsAffirmed(t *testing.T) {
	found, status := Detect("bitcoin etf filing under review this week maybe", "etf")
	if !found || status != StatusAffirmed {
		t.Fatalf("keyword with no polarity words should be affirmed, got %v %s", found, status)
	}
}

func TestDetectOutsideWindowIgnored(t *testing.T) {
	// "not" sits four tokens before the keyword, beyond the window.
	found, status := Detect("not one two three etf listed", "etf")
	if !found || status != StatusAffirmed {
		t.Fatalf("polarity word outside window must not apply, got %v %s", found, status)
	}
}

func TestDetectNearestBeforeWins(t *testing.T) {
	// Nearest context word is "approve" (affirmation) even though "not"
	// also sits inside the window further out.
	found, status := Detect("not will approve etf", "etf")
	if !found || status != StatusAffirmed {
		t.Fatalf("nearest-first before-window scan failed, got %v %s", found, status)
	}
}

func TestDetectSubstringMatch(t *testing.T) {
	found, status := Detect("the approval was rejected afterwards", "approve")
	if !found {
		t.Fatalf("substring occurrence should count as found")
	}
	if status != StatusNegated {
		t.Fatalf("reject within window should negate, got %s", status)
	}
}

func TestDetectAbsent(t *testing.T) {
	found, status := Detect("nothing relevant here", "etf")
	if found || status != StatusNotFound {
		t.Fatalf("expected not found, got %v %s", found, status)
	}
}

func TestDetectPhraseNegations(t *testing.T) {
	cases := []struct {
		text string
		want Status
	}{
		{"the fed did not cut rates", StatusNegated},
		{"there was no cut announced", StatusNegated},
		{"they will never cut", StatusNegated},
		{"the fed announced a cut", StatusAffirmed},
	}
	for _, c := range cases {
		found, status := DetectPhrase(c.text, "cut")
		if !found || status != c.want {
			t.Fatalf("%q: got %v %s, want found %s", c.text, found, status, c.want)
		}
	}
}

func TestDetectorsAgreeOnAbsentKeyword(t *testing.T) {
	text := "completely unrelated content"
	if found, _ := Detect(text, "election"); found {
		t.Fatalf("Detect reported absent keyword as found")
	}
	found, status := DetectPhrase(text, "election")
	if found || status != "" {
		t.Fatalf("DetectPhrase on absent keyword: got %v %q", found, status)
	}
}
