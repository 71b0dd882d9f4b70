package catalog

import "encoding/json"

// Course is the canonical shape of one catalog search result. The adapter
// is the only place that knows the catalog's alternate field spellings;
// nothing downstream sees raw maps.
type Course struct {
	ID         string
	ClubName   string
	CourseName string
	Lat        float64
	Lng        float64
	HasCoords  bool
	Tees       map[string][]Tee
	Raw        json.RawMessage
}

// Name returns the candidate's display name, preferring the club name.
func (c Course) Name() string {
	if c.ClubName != "" {
		return c.ClubName
	}
	return c.CourseName
}

// Tee is one tee-set definition under a gender key. Pointer fields are nil
// when the source omits the value or sends something non-finite.
type Tee struct {
	Name          string
	TotalYards    *float64
	ParTotal      *int
	CourseRating  *float64
	SlopeRating   *float64
	BogeyRating   *float64
	TotalMeters   *float64
	NumberOfHoles *int

	FrontCourseRating *float64
	FrontSlopeRating  *float64
	FrontBogeyRating  *float64
	BackCourseRating  *float64
	BackSlopeRating   *float64
	BackBogeyRating   *float64

	Holes []Hole
}

// Hole is one per-hole record of a tee.
type Hole struct {
	Number   *int
	Par      *int
	Yardage  *float64
	Handicap *int
}
