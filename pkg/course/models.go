package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Ware71/CIAGA-sub002/pkg/teeingest"
)

const (
	SourceMap        = "map"
	SourceMapCatalog = "map+catalog"
)

// Course is a canonical golf course keyed by its external map-database id.
// A course is enriched once its catalog id is set and it owns at least one
// tee box.
type Course struct {
	ID           string  `json:"id" gorm:"primaryKey;column:id"`
	OSMID        string  `json:"osm_id" gorm:"column:osm_id;uniqueIndex"`
	Name         string  `json:"name" gorm:"column:name"`
	OriginalName string  `json:"original_name" gorm:"column:original_name"`
	Lat          float64 `json:"lat" gorm:"column:lat"`
	Lng          float64 `json:"lng" gorm:"column:lng"`
	City         *string `json:"city,omitempty" gorm:"column:city"`
	Country      *string `json:"country,omitempty" gorm:"column:country"`
	Source       string  `json:"source" gorm:"column:source"`

	CatalogID      *string        `json:"catalog_id,omitempty" gorm:"column:catalog_id"`
	CatalogPayload datatypes.JSON `json:"-" gorm:"column:catalog_payload"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`

	TeeBoxes []TeeBox `json:"tee_boxes,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// TeeBox is one playable configuration of a course. Front/back-nine rating
// fields are set only on the full row of an 18-hole split.
type TeeBox struct {
	ID       string `json:"id" gorm:"primaryKey;column:id"`
	CourseID string `json:"course_id" gorm:"column:course_id;index"`
	Name     string `json:"name" gorm:"column:name"`
	Gender   string `json:"gender" gorm:"column:gender"`

	TotalYards   *float64 `json:"total_yards,omitempty" gorm:"column:total_yards"`
	ParTotal     *int     `json:"par_total,omitempty" gorm:"column:par_total"`
	CourseRating *float64 `json:"course_rating,omitempty" gorm:"column:course_rating"`
	SlopeRating  *float64 `json:"slope_rating,omitempty" gorm:"column:slope_rating"`
	BogeyRating  *float64 `json:"bogey_rating,omitempty" gorm:"column:bogey_rating"`
	TotalMeters  *float64 `json:"total_meters,omitempty" gorm:"column:total_meters"`
	HolesCount   int      `json:"holes_count" gorm:"column:holes_count"`
	SortOrder    int      `json:"sort_order" gorm:"column:sort_order"`

	FrontCourseRating *float64 `json:"front_course_rating,omitempty" gorm:"column:front_course_rating"`
	FrontSlopeRating  *float64 `json:"front_slope_rating,omitempty" gorm:"column:front_slope_rating"`
	FrontBogeyRating  *float64 `json:"front_bogey_rating,omitempty" gorm:"column:front_bogey_rating"`
	BackCourseRating  *float64 `json:"back_course_rating,omitempty" gorm:"column:back_course_rating"`
	BackSlopeRating   *float64 `json:"back_slope_rating,omitempty" gorm:"column:back_slope_rating"`
	BackBogeyRating   *float64 `json:"back_bogey_rating,omitempty" gorm:"column:back_bogey_rating"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	Holes []Hole `json:"holes,omitempty" gorm:"foreignKey:TeeBoxID;constraint:OnDelete:CASCADE"`
}

// Hole is one hole of a tee box; numbers are contiguous from 1 within a
// tee box.
type Hole struct {
	ID          string   `json:"id" gorm:"primaryKey;column:id"`
	TeeBoxID    string   `json:"tee_box_id" gorm:"column:tee_box_id;index"`
	Number      int      `json:"number" gorm:"column:number"`
	Par         *int     `json:"par,omitempty" gorm:"column:par"`
	Yardage     *float64 `json:"yardage,omitempty" gorm:"column:yardage"`
	StrokeIndex *int     `json:"stroke_index,omitempty" gorm:"column:stroke_index"`
}

func (Course) TableName() string {
	return "courses"
}

func (TeeBox) TableName() string {
	return "course_tee_boxes"
}

func (Hole) TableName() string {
	return "course_tee_holes"
}

// BuildRows materializes ingestion output as persistable tee box and hole
// rows with ids assigned up front, so holes can be bulk-inserted keyed to
// their tee boxes.
func BuildRows(courseID string, records []teeingest.TeeRecord) ([]TeeBox, []Hole) {
	teeBoxes := make([]TeeBox, 0, len(records))
	var holes []Hole

	for _, rec := range records {
		teeID := uuid.New().String()
		teeBoxes = append(teeBoxes, TeeBox{
			ID:           teeID,
			CourseID:     courseID,
			Name:         rec.Name,
			Gender:       rec.Gender,
			TotalYards:   rec.TotalYards,
			ParTotal:     rec.ParTotal,
			CourseRating: rec.CourseRating,
			SlopeRating:  rec.SlopeRating,
			BogeyRating:  rec.BogeyRating,
			TotalMeters:  rec.TotalMeters,
			HolesCount:   rec.HolesCount,
			SortOrder:    rec.SortOrder,

			FrontCourseRating: rec.FrontCourseRating,
			FrontSlopeRating:  rec.FrontSlopeRating,
			FrontBogeyRating:  rec.FrontBogeyRating,
			BackCourseRating:  rec.BackCourseRating,
			BackSlopeRating:   rec.BackSlopeRating,
			BackBogeyRating:   rec.BackBogeyRating,
		})

		for _, h := range rec.Holes {
			holes = append(holes, Hole{
				ID:          uuid.New().String(),
				TeeBoxID:    teeID,
				Number:      h.Number,
				Par:         h.Par,
				Yardage:     h.Yardage,
				StrokeIndex: h.StrokeIndex,
			})
		}
	}

	return teeBoxes, holes
}
