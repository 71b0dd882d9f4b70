package catalog

import (
	"encoding/json"
	"testing"
)

func TestAdaptCourseNestedLocation(t *testing.T) {
	raw := json.RawMessage(`{
		"id": 1015,
		"club_name": "Pebble Beach Golf Links",
		"course_name": "Pebble Beach",
		"location": {"latitude": 36.5725, "longitude": -121.9486}
	}`)

	course := AdaptCourse(raw)
	if course.ID != "1015" {
		t.Fatalf("id = %q", course.ID)
	}
	if !course.HasCoords || course.Lat != 36.5725 || course.Lng != -121.9486 {
		t.Fatalf("coords not extracted: %+v", course)
	}
	if course.Name() != "Pebble Beach Golf Links" {
		t.Fatalf("name = %q", course.Name())
	}
}

func TestAdaptCourseFlatCoordAliases(t *testing.T) {
	raw := json.RawMessage(`{"id": "x", "course_name": "Alias Course", "lat": 51.5, "lon": -0.1}`)
	course := AdaptCourse(raw)
	if !course.HasCoords || course.Lat != 51.5 || course.Lng != -0.1 {
		t.Fatalf("flat aliases not extracted: %+v", course)
	}
	if course.Name() != "Alias Course" {
		t.Fatalf("expected course_name fallback, got %q", course.Name())
	}
}

func TestAdaptCourseMissingCoords(t *testing.T) {
	course := AdaptCourse(json.RawMessage(`{"id": "x", "club_name": "Nowhere"}`))
	if course.HasCoords {
		t.Fatalf("expected HasCoords=false: %+v", course)
	}
}

func TestAdaptCourseTeeFieldAliases(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "x",
		"lat": 1, "lng": 1,
		"tees": {
			"male": [{
				"name": "Blue",
				"yards": 6200,
				"par": 71,
				"rating": 70.1,
				"slope": 125,
				"holes": [
					{"hole": 1, "par": 4, "yards": 410, "handicap": 7},
					{"hole_number": 2, "par": 3, "yardage": 155}
				]
			}]
		}
	}`)

	course := AdaptCourse(raw)
	tees := course.Tees["male"]
	if len(tees) != 1 {
		t.Fatalf("expected 1 tee, got %+v", course.Tees)
	}
	tee := tees[0]
	if tee.Name != "Blue" || tee.TotalYards == nil || *tee.TotalYards != 6200 {
		t.Fatalf("tee aliases not decoded: %+v", tee)
	}
	if tee.ParTotal == nil || *tee.ParTotal != 71 {
		t.Fatalf("par alias not decoded: %+v", tee)
	}
	if tee.CourseRating == nil || *tee.CourseRating != 70.1 {
		t.Fatalf("rating alias not decoded: %+v", tee)
	}
	if len(tee.Holes) != 2 {
		t.Fatalf("holes not decoded: %+v", tee.Holes)
	}
	if tee.Holes[0].Number == nil || *tee.Holes[0].Number != 1 {
		t.Fatalf("hole alias not decoded: %+v", tee.Holes[0])
	}
	if tee.Holes[1].Yardage == nil || *tee.Holes[1].Yardage != 155 {
		t.Fatalf("yardage alias not decoded: %+v", tee.Holes[1])
	}
	if tee.Holes[1].Handicap != nil {
		t.Fatalf("missing handicap should stay nil: %+v", tee.Holes[1])
	}
}

func TestAdaptCourseRejectsNonFiniteNumbers(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "x", "lat": 1, "lng": 1,
		"tees": {"female": [{"tee_name": "Red", "course_rating": "NaN", "slope_rating": "Infinity"}]}
	}`)
	course := AdaptCourse(raw)
	tee := course.Tees["female"][0]
	if tee.CourseRating != nil || tee.SlopeRating != nil {
		t.Fatalf("non-finite values must coerce to nil: %+v", tee)
	}
}

func TestAdaptCourseMalformedJSONKeepsRaw(t *testing.T) {
	raw := json.RawMessage(`{broken`)
	course := AdaptCourse(raw)
	if course.ID != "" || course.HasCoords {
		t.Fatalf("malformed input should yield empty course: %+v", course)
	}
	if string(course.Raw) != `{broken` {
		t.Fatal("raw payload must be retained for audit")
	}
}
