package teeingest

import (
	"math"
	"sort"
	"strings"

	"github.com/Ware71/CIAGA-sub002/pkg/catalog"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderUnisex = "unisex"

	yardsPerMeterFactor = 0.9144

	siYardageWeight = 0.7
	siParWeight     = 0.3
	siParScale      = 50
)

// TeeRecord is one normalized tee row ready for persistence. The front and
// back rating fields are populated only on the "full 18" row of a split.
type TeeRecord struct {
	Name         string
	Gender       string
	TotalYards   *float64
	ParTotal     *int
	CourseRating *float64
	SlopeRating  *float64
	BogeyRating  *float64
	TotalMeters  *float64
	HolesCount   int
	SortOrder    int

	FrontCourseRating *float64
	FrontSlopeRating  *float64
	FrontBogeyRating  *float64
	BackCourseRating  *float64
	BackSlopeRating   *float64
	BackBogeyRating   *float64

	Holes []HoleRecord
}

// HoleRecord is one normalized hole row.
type HoleRecord struct {
	Number      int
	Par         *int
	Yardage     *float64
	StrokeIndex *int
}

// Build converts a matched catalog record's nested tee structure into flat
// tee rows with dense, per-course sort ordering.
func Build(tees map[string][]catalog.Tee) []TeeRecord {
	var records []TeeRecord

	genders := make([]string, 0, len(tees))
	for g := range tees {
		genders = append(genders, g)
	}
	sort.Strings(genders)

	for _, genderKey := range genders {
		gender := normalizeGender(genderKey)
		for _, tee := range tees[genderKey] {
			records = append(records, buildTee(tee, gender)...)
		}
	}

	assignSortOrder(records)
	return records
}

// buildTee produces one row for an ordinary tee, or three rows when an
// 18-hole tee carries separate front/back-nine ratings.
func buildTee(tee catalog.Tee, gender string) []TeeRecord {
	if len(tee.Holes) == 18 && hasNineHoleRatings(tee) {
		full := makeRecord(tee, gender, tee.Name, numberedHoles(tee.Holes, true))
		full.FrontCourseRating = tee.FrontCourseRating
		full.FrontSlopeRating = tee.FrontSlopeRating
		full.FrontBogeyRating = tee.FrontBogeyRating
		full.BackCourseRating = tee.BackCourseRating
		full.BackSlopeRating = tee.BackSlopeRating
		full.BackBogeyRating = tee.BackBogeyRating

		front := makeHalf(tee, gender, tee.Name+" (Front 9)", tee.Holes[:9],
			tee.FrontCourseRating, tee.FrontSlopeRating, tee.FrontBogeyRating)
		back := makeHalf(tee, gender, tee.Name+" (Back 9)", tee.Holes[9:],
			tee.BackCourseRating, tee.BackSlopeRating, tee.BackBogeyRating)

		return []TeeRecord{full, front, back}
	}

	return []TeeRecord{makeRecord(tee, gender, tee.Name, numberedHoles(tee.Holes, true))}
}

func hasNineHoleRatings(tee catalog.Tee) bool {
	return tee.FrontCourseRating != nil || tee.FrontSlopeRating != nil || tee.FrontBogeyRating != nil ||
		tee.BackCourseRating != nil || tee.BackSlopeRating != nil || tee.BackBogeyRating != nil
}

func makeRecord(tee catalog.Tee, gender, name string, holes []HoleRecord) TeeRecord {
	rec := TeeRecord{
		Name:         name,
		Gender:       gender,
		TotalYards:   tee.TotalYards,
		ParTotal:     tee.ParTotal,
		CourseRating: tee.CourseRating,
		SlopeRating:  tee.SlopeRating,
		BogeyRating:  tee.BogeyRating,
		TotalMeters:  tee.TotalMeters,
		HolesCount:   len(holes),
		Holes:        holes,
	}
	fillDerived(&rec)
	return rec
}

// makeHalf builds a front- or back-nine row: primary ratings come from the
// half-specific fields and holes are renumbered 1..9.
func makeHalf(tee catalog.Tee, gender, name string, holes []catalog.Hole, rating, slope, bogey *float64) TeeRecord {
	rec := TeeRecord{
		Name:         name,
		Gender:       gender,
		CourseRating: rating,
		SlopeRating:  slope,
		BogeyRating:  bogey,
		HolesCount:   len(holes),
		Holes:        numberedHoles(holes, false),
	}
	fillDerived(&rec)
	return rec
}

// numberedHoles copies source holes, assigns stroke indices, and numbers
// them: full tees keep the source numbering when available, split halves
// are always renumbered positionally.
func numberedHoles(holes []catalog.Hole, keepSourceNumbers bool) []HoleRecord {
	if len(holes) == 0 {
		return nil
	}

	out := make([]HoleRecord, len(holes))
	for i, h := range holes {
		number := i + 1
		if keepSourceNumbers && h.Number != nil && *h.Number > 0 {
			number = *h.Number
		}
		out[i] = HoleRecord{
			Number:      number,
			Par:         h.Par,
			Yardage:     h.Yardage,
			StrokeIndex: h.Handicap,
		}
	}

	deriveStrokeIndices(out)
	return out
}

// deriveStrokeIndices fills missing stroke indices by ranking holes on a
// blended difficulty score, 1 = hardest. Source handicaps win when every
// hole carries one.
func deriveStrokeIndices(holes []HoleRecord) {
	complete := true
	for _, h := range holes {
		if h.StrokeIndex == nil {
			complete = false
			break
		}
	}
	if complete {
		return
	}

	order := make([]int, len(holes))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps original array order on exact difficulty ties.
	sort.SliceStable(order, func(a, b int) bool {
		return difficulty(holes[order[a]]) > difficulty(holes[order[b]])
	})

	for rank, idx := range order {
		si := rank + 1
		holes[idx].StrokeIndex = &si
	}
}

func difficulty(h HoleRecord) float64 {
	yardage := 0.0
	if h.Yardage != nil {
		yardage = *h.Yardage
	}
	par := 0.0
	if h.Par != nil {
		par = float64(*h.Par)
	}
	return yardage*siYardageWeight + par*siParScale*siParWeight
}

// fillDerived backfills tee totals the source omitted: yards from the hole
// breakdown, par likewise, meters from yards.
func fillDerived(rec *TeeRecord) {
	if rec.TotalYards == nil {
		if sum, ok := sumYardage(rec.Holes); ok {
			rec.TotalYards = &sum
		}
	}
	if rec.ParTotal == nil {
		if sum, ok := sumPar(rec.Holes); ok {
			rec.ParTotal = &sum
		}
	}
	if rec.TotalMeters == nil && rec.TotalYards != nil {
		meters := math.Round(*rec.TotalYards * yardsPerMeterFactor)
		rec.TotalMeters = &meters
	}
}

func sumYardage(holes []HoleRecord) (float64, bool) {
	total := 0.0
	found := false
	for _, h := range holes {
		if h.Yardage != nil {
			total += *h.Yardage
			found = true
		}
	}
	return total, found
}

func sumPar(holes []HoleRecord) (int, bool) {
	total := 0
	found := false
	for _, h := range holes {
		if h.Par != nil {
			total += *h.Par
			found = true
		}
	}
	return total, found
}

// assignSortOrder ranks all tee rows of a course: rating descending with
// missing values last, then slope, then yards. Stable for remaining ties.
func assignSortOrder(records []TeeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if c := compareDesc(records[i].CourseRating, records[j].CourseRating); c != 0 {
			return c < 0
		}
		if c := compareDesc(records[i].SlopeRating, records[j].SlopeRating); c != 0 {
			return c < 0
		}
		return compareDesc(records[i].TotalYards, records[j].TotalYards) < 0
	})
	for i := range records {
		records[i].SortOrder = i
	}
}

// compareDesc orders descending with nil ranked below any value.
func compareDesc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a > *b:
		return -1
	case *a < *b:
		return 1
	default:
		return 0
	}
}

func normalizeGender(key string) string {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "male", "males", "m", "man", "men", "mens", "men's":
		return GenderMale
	case "female", "females", "f", "woman", "women", "womens", "women's", "lady", "ladies":
		return GenderFemale
	default:
		return GenderUnisex
	}
}
