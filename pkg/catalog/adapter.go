package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AdaptCourse parses one raw catalog course into the canonical Course.
// The catalog is loosely typed: coordinates, hole numbers and yardages
// show up under several spellings depending on the data vintage.
func AdaptCourse(raw json.RawMessage) Course {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return Course{Raw: raw}
	}

	course := Course{
		ID:         getString(data["id"]),
		ClubName:   strings.TrimSpace(getString(data["club_name"])),
		CourseName: strings.TrimSpace(getString(data["course_name"])),
		Raw:        raw,
	}

	course.Lat, course.Lng, course.HasCoords = extractCoords(data)
	course.Tees = extractTees(data["tees"])
	return course
}

func extractCoords(data map[string]interface{}) (float64, float64, bool) {
	location := extractMap(data["location"])

	lat, latOK := getFloat(firstPresent(
		location["latitude"], location["lat"],
		data["latitude"], data["lat"],
	))
	lng, lngOK := getFloat(firstPresent(
		location["longitude"], location["lng"], location["lon"],
		data["longitude"], data["lng"], data["lon"],
	))

	if !latOK || !lngOK {
		return 0, 0, false
	}
	return lat, lng, true
}

func extractTees(value interface{}) map[string][]Tee {
	byGender := extractMap(value)
	if len(byGender) == 0 {
		return nil
	}

	out := make(map[string][]Tee, len(byGender))
	for gender, teeList := range byGender {
		list, ok := teeList.([]interface{})
		if !ok {
			continue
		}
		tees := make([]Tee, 0, len(list))
		for _, entry := range list {
			teeMap := extractMap(entry)
			if len(teeMap) == 0 {
				continue
			}
			tees = append(tees, adaptTee(teeMap))
		}
		out[gender] = tees
	}
	return out
}

func adaptTee(data map[string]interface{}) Tee {
	tee := Tee{
		Name:          strings.TrimSpace(getString(firstPresent(data["tee_name"], data["name"]))),
		TotalYards:    floatPtr(firstPresent(data["total_yards"], data["yards"], data["yardage"])),
		ParTotal:      intPtr(firstPresent(data["par_total"], data["par"])),
		CourseRating:  floatPtr(firstPresent(data["course_rating"], data["rating"])),
		SlopeRating:   floatPtr(firstPresent(data["slope_rating"], data["slope"])),
		BogeyRating:   floatPtr(data["bogey_rating"]),
		TotalMeters:   floatPtr(data["total_meters"]),
		NumberOfHoles: intPtr(data["number_of_holes"]),

		FrontCourseRating: floatPtr(data["front_course_rating"]),
		FrontSlopeRating:  floatPtr(data["front_slope_rating"]),
		FrontBogeyRating:  floatPtr(data["front_bogey_rating"]),
		BackCourseRating:  floatPtr(data["back_course_rating"]),
		BackSlopeRating:   floatPtr(data["back_slope_rating"]),
		BackBogeyRating:   floatPtr(data["back_bogey_rating"]),
	}

	if holes, ok := data["holes"].([]interface{}); ok {
		tee.Holes = make([]Hole, 0, len(holes))
		for _, entry := range holes {
			holeMap := extractMap(entry)
			tee.Holes = append(tee.Holes, Hole{
				Number:   intPtr(firstPresent(holeMap["hole_number"], holeMap["hole"])),
				Par:      intPtr(holeMap["par"]),
				Yardage:  floatPtr(firstPresent(holeMap["yardage"], holeMap["yards"])),
				Handicap: intPtr(holeMap["handicap"]),
			})
		}
	}
	return tee
}

func firstPresent(values ...interface{}) interface{} {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func extractMap(value interface{}) map[string]interface{} {
	if m, ok := value.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func getString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

// getFloat coerces loose JSON numerics. Non-finite values are rejected so
// NaN ratings never reach the database.
func getFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case json.Number:
		f, err := val.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case int:
		return float64(val), true
	default:
		return 0, false
	}
}

func floatPtr(v interface{}) *float64 {
	if f, ok := getFloat(v); ok {
		return &f
	}
	return nil
}

func intPtr(v interface{}) *int {
	if f, ok := getFloat(v); ok {
		i := int(math.Round(f))
		return &i
	}
	return nil
}
