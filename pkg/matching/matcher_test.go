package matching

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Ware71/CIAGA-sub002/pkg/catalog"
	"github.com/Ware71/CIAGA-sub002/pkg/common/config"
)

type fakeCatalog struct {
	results map[string][]catalog.Course
	err     error
	calls   int
	queries []string
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]catalog.Course, error) {
	f.calls++
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func testPolicy() config.MatchPolicy {
	return config.MatchPolicy{
		MaxKmNamed:      60,
		MaxKmUnnamed:    40,
		MinNameSim:      0.05,
		MinFinalNamed:   0.55,
		MinFinalUnnamed: 0.65,
	}
}

// Offsets one degree of latitude is ~111.19 km on the haversine sphere, so
// km/111.19 degrees puts a candidate at roughly km kilometers.
func candidateAt(id, name string, lat, lng, kmAway float64) catalog.Course {
	return catalog.Course{
		ID:        id,
		ClubName:  name,
		Lat:       lat + kmAway/111.19,
		Lng:       lng,
		HasCoords: true,
	}
}

func TestMatchAcceptsNamedCandidate(t *testing.T) {
	lat, lng := 36.5725, -121.9486
	fake := &fakeCatalog{results: map[string][]catalog.Course{
		"Pebble Beach Golf Links": {candidateAt("c1", "Pebble Beach Golf Links", lat, lng, 2)},
	}}
	m := NewMatcher(fake, testPolicy())

	match, trail := m.Match(context.Background(), Input{Name: "Pebble Beach Golf Links", Lat: lat, Lng: lng})
	if match == nil {
		t.Fatalf("expected a match, trail: %+v", trail)
	}
	if match.Course.ID != "c1" {
		t.Fatalf("wrong candidate: %+v", match)
	}
	// closeness ~ 1 - 2/60, name sim 1.0: blended ~ 0.85*0.967 + 0.15
	if match.FinalScore < 0.9 {
		t.Fatalf("unexpected score %f", match.FinalScore)
	}
	if fake.calls != 1 {
		t.Fatalf("expected early exit after first query, got %d calls", fake.calls)
	}
	if match.Query != "Pebble Beach Golf Links" || match.Strategy != "original" {
		t.Fatalf("unexpected winning query: %+v", match)
	}
}

func TestMatchGeoGateBoundaryInclusive(t *testing.T) {
	lat, lng := 51.0, 0.0
	policy := testPolicy()
	// Blended score at exactly maxKm is pure name weight, so drop the
	// acceptance floor to observe the gate in isolation.
	policy.MinFinalNamed = 0.10

	atGate := candidateAt("edge", "Heathland Golf Club", lat, lng, 0)
	atGate.Lat = lat + (policy.MaxKmNamed-0.001)/111.19

	beyond := candidateAt("far", "Heathland Golf Club", lat, lng, 0)
	beyond.Lat = lat + (policy.MaxKmNamed+5)/111.19

	fake := &fakeCatalog{results: map[string][]catalog.Course{
		"Heathland Golf Club": {beyond, atGate},
	}}
	m := NewMatcher(fake, policy)

	match, _ := m.Match(context.Background(), Input{Name: "Heathland Golf Club", Lat: lat, Lng: lng})
	if match == nil {
		t.Fatal("expected the in-gate candidate to be accepted")
	}
	if match.Course.ID != "edge" {
		t.Fatalf("expected the in-gate candidate, got %+v", match)
	}
}

func TestMatchRejectsBeyondGeoGate(t *testing.T) {
	lat, lng := 51.0, 0.0
	fake := &fakeCatalog{results: map[string][]catalog.Course{
		"Heathland Golf Club": {candidateAt("far", "Heathland Golf Club", lat, lng, 61)},
	}}
	m := NewMatcher(fake, testPolicy())

	match, trail := m.Match(context.Background(), Input{Name: "Heathland Golf Club", Lat: lat, Lng: lng})
	if match != nil {
		t.Fatalf("expected no match, got %+v", match)
	}
	if len(trail) != 3 {
		t.Fatalf("expected a trail entry per planned query, got %d", len(trail))
	}
}

func TestMatchUnnamedOnDistanceAlone(t *testing.T) {
	lat, lng := 51.0, 0.0
	fake := &fakeCatalog{results: map[string][]catalog.Course{
		"golf": {candidateAt("c1", "Some Distant Name", lat, lng, 10)},
	}}
	m := NewMatcher(fake, testPolicy())

	match, _ := m.Match(context.Background(), Input{Name: "Unnamed golf course", Lat: lat, Lng: lng, Unnamed: true})
	if match == nil {
		t.Fatal("expected unnamed match on distance alone")
	}
	// closeness = 1 - 10/40 = 0.75; name score must not contribute
	if math.Abs(match.FinalScore-0.75) > 0.01 {
		t.Fatalf("unexpected score %f", match.FinalScore)
	}
	if match.NameScore != 0 {
		t.Fatalf("unnamed input must not score names, got %f", match.NameScore)
	}
}

func TestMatchSkipsCandidatesWithoutCoords(t *testing.T) {
	fake := &fakeCatalog{results: map[string][]catalog.Course{
		"Some Club": {{ID: "nocoords", ClubName: "Some Club"}},
	}}
	m := NewMatcher(fake, testPolicy())

	match, _ := m.Match(context.Background(), Input{Name: "Some Club", Lat: 51, Lng: 0})
	if match != nil {
		t.Fatalf("expected no match, got %+v", match)
	}
}

func TestMatchRecordsUpstreamErrorsAndContinues(t *testing.T) {
	fake := &fakeCatalog{err: errors.New("boom")}
	m := NewMatcher(fake, testPolicy())

	match, trail := m.Match(context.Background(), Input{Name: "Anything", Lat: 51, Lng: 0})
	if match != nil {
		t.Fatalf("expected no match, got %+v", match)
	}
	if fake.calls != len(trail) {
		t.Fatalf("every query should be attempted: %d calls, %d trail entries", fake.calls, len(trail))
	}
	for _, entry := range trail {
		if entry.Error == "" {
			t.Fatalf("expected error recorded on %+v", entry)
		}
	}
}

func TestMatchTieBreakPrefersCloser(t *testing.T) {
	lat, lng := 51.0, 0.0
	policy := testPolicy()
	fake := &fakeCatalog{results: map[string][]catalog.Course{
		"Twin Oaks Golf Club": {
			candidateAt("far", "Twin Oaks", lat, lng, 30),
			candidateAt("near", "Twin Oaks", lat, lng, 5),
		},
	}}
	m := NewMatcher(fake, policy)

	match, _ := m.Match(context.Background(), Input{Name: "Twin Oaks Golf Club", Lat: lat, Lng: lng})
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Course.ID != "near" {
		t.Fatalf("expected closer candidate to win, got %+v", match)
	}
}
