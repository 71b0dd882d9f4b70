package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalizeCanonicalizes(t *testing.T) {
	cases := map[string]string{
		"Château de Vault-de-Lugny Golf": "chateau de vault de lugny golf",
		"  ROYAL   ST  George's  ":      "royal saint george s",
		"Pebble Beach Golf Links":       "pebble beach golf links",
		"Sunningdale (Old Course)":      "sunningdale old course",
		"":                              "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeDropsNoiseWordsOnlyWhenTokenizing(t *testing.T) {
	// "de" survives Normalize itself; stoplists apply at tokenization.
	if got := Normalize("Golf de Paris"); got != "golf de paris" {
		t.Fatalf("unexpected normalized form: %q", got)
	}
}

func TestIsUnnamed(t *testing.T) {
	unnamed := []string{"", "   ", "Unnamed Golf Course", "unnamed course #4", "UNNAMED"}
	for _, name := range unnamed {
		if !IsUnnamed(name) {
			t.Fatalf("expected %q to classify unnamed", name)
		}
	}
	named := []string{"St Andrews", "Pebble Beach Golf Links", "Golf"}
	for _, name := range named {
		if IsUnnamed(name) {
			t.Fatalf("expected %q to classify named", name)
		}
	}
}

func TestTokensSimilarityProfile(t *testing.T) {
	got := Tokens("The Belfry Golf Club Ltd 1990", ProfileSimilarity)
	want := []string{"belfry"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("similarity tokens = %v, want %v", got, want)
	}
}

func TestTokensQueryProfileKeepsNumbersAndSuffixes(t *testing.T) {
	got := Tokens("The Belfry Golf Club Ltd 1990", ProfileQuery)
	want := []string{"belfry", "ltd", "1990"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("query tokens = %v, want %v", got, want)
	}
}

func TestTokensNoiseProfileKeepsGenericWords(t *testing.T) {
	got := Tokens("The Golf Club at Dove Mountain", ProfileNoise)
	want := []string{"golf", "club", "dove", "mountain"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("noise tokens = %v, want %v", got, want)
	}
}
