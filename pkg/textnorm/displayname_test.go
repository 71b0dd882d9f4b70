package textnorm

import "testing"

func TestCleanCatalogName(t *testing.T) {
	cases := map[string]string{
		"Wentworth (4712)":          "Wentworth",
		"Moor Park Golf Club Ltd":   "Moor Park Golf Club",
		"Moor Park, Limited":        "Moor Park",
		"Gleneagles (#0123)": "Gleneagles",
		"Carnoustie":         "Carnoustie",
	}
	for in, want := range cases {
		if got := CleanCatalogName(in); got != want {
			t.Fatalf("CleanCatalogName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveDisplayNameUnnamedPrefersCatalog(t *testing.T) {
	got := ResolveDisplayName("Unnamed golf course", "Pebble Beach Golf Links (1234)")
	if got != "Pebble Beach Golf Links" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveDisplayNameUnnamedKeepsOriginalWhenCatalogEmpty(t *testing.T) {
	got := ResolveDisplayName("Unnamed golf course", "(4712)")
	if got != "Unnamed golf course" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveDisplayNameFewerDigitsWins(t *testing.T) {
	got := ResolveDisplayName("Course Ref 88231", "Royal Birkdale")
	if got != "Royal Birkdale" {
		t.Fatalf("got %q", got)
	}

	got = ResolveDisplayName("Royal Birkdale", "Royal Birkdale Course 2")
	if got != "Royal Birkdale" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveDisplayNameFewerTokensBreaksDigitTie(t *testing.T) {
	got := ResolveDisplayName("The Old Course at Sunningdale Heath", "Sunningdale Heath")
	if got != "Sunningdale Heath" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveDisplayNameFullTieKeepsOriginal(t *testing.T) {
	got := ResolveDisplayName("Carnoustie Links", "Carnoustie Championship")
	if got != "Carnoustie Links" {
		t.Fatalf("got %q", got)
	}
}
