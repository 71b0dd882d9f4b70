package course

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("course not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Course{}, &TeeBox{}, &Hole{})
}

func (r *Repository) FindBySourceID(ctx context.Context, osmID string) (*Course, error) {
	var crs Course
	result := r.db.WithContext(ctx).Where("osm_id = ?", osmID).First(&crs)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &crs, nil
}

// FindWithTees loads a course with its tee boxes (sorted) and their holes.
func (r *Repository) FindWithTees(ctx context.Context, id string) (*Course, error) {
	var crs Course
	result := r.db.WithContext(ctx).
		Preload("TeeBoxes", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("TeeBoxes.Holes", func(db *gorm.DB) *gorm.DB { return db.Order("number ASC") }).
		Where("id = ?", id).
		First(&crs)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &crs, nil
}

func (r *Repository) Create(ctx context.Context, crs *Course) error {
	if crs.ID == "" {
		crs.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	crs.CreatedAt = now
	crs.UpdatedAt = now
	return r.db.WithContext(ctx).Create(crs).Error
}

func (r *Repository) TeeBoxCount(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TeeBox{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *Repository) HoleCount(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Hole{}).
		Where("tee_box_id IN (?)", r.db.Model(&TeeBox{}).Select("id").Where("course_id = ?", courseID)).
		Count(&count).Error
	return count, err
}

func (r *Repository) TeeBoxes(ctx context.Context, courseID string) ([]TeeBox, error) {
	var boxes []TeeBox
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sort_order ASC").
		Find(&boxes).Error
	return boxes, err
}

// BackfillLocation fills city/country on a course without overwriting any
// existing non-null value.
func (r *Repository) BackfillLocation(ctx context.Context, courseID string, city, country string) error {
	updates := map[string]interface{}{}
	if city != "" {
		updates["city"] = gorm.Expr("COALESCE(city, ?)", city)
	}
	if country != "" {
		updates["country"] = gorm.Expr("COALESCE(country, ?)", country)
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).Model(&Course{}).Where("id = ?", courseID).Updates(updates).Error
}

// ReplaceEnrichment commits one consistent catalog snapshot: it updates the
// course row and swaps out every tee box and hole in a single transaction.
// A per-course advisory lock serializes concurrent resolutions of the same
// source id, and the enriched state is re-checked under the lock so a
// racing caller that lost simply observes the winner's rows.
func (r *Repository) ReplaceEnrichment(ctx context.Context, crs *Course, teeBoxes []TeeBox, holes []Hole) (teeCount, holeCount int, alreadyEnriched bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", crs.OSMID).Error; err != nil {
			return err
		}

		var current Course
		if err := tx.Where("id = ?", crs.ID).First(&current).Error; err != nil {
			return err
		}
		if current.CatalogID != nil {
			var count int64
			if err := tx.Model(&TeeBox{}).Where("course_id = ?", crs.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				alreadyEnriched = true
				teeCount = int(count)
				var hc int64
				if err := tx.Model(&Hole{}).
					Where("tee_box_id IN (?)", tx.Model(&TeeBox{}).Select("id").Where("course_id = ?", crs.ID)).
					Count(&hc).Error; err != nil {
					return err
				}
				holeCount = int(hc)
				return nil
			}
		}

		crs.UpdatedAt = time.Now().UTC()
		if err := tx.Model(&Course{}).Where("id = ?", crs.ID).Updates(map[string]interface{}{
			"name":            crs.Name,
			"city":            crs.City,
			"country":         crs.Country,
			"source":          crs.Source,
			"catalog_id":      crs.CatalogID,
			"catalog_payload": crs.CatalogPayload,
			"updated_at":      crs.UpdatedAt,
		}).Error; err != nil {
			return err
		}

		// Full replacement; holes cascade with their tee boxes.
		if err := tx.Where("course_id = ?", crs.ID).Delete(&TeeBox{}).Error; err != nil {
			return err
		}
		if len(teeBoxes) > 0 {
			if err := tx.Create(&teeBoxes).Error; err != nil {
				return err
			}
		}
		if len(holes) > 0 {
			if err := tx.Create(&holes).Error; err != nil {
				return err
			}
		}

		teeCount = len(teeBoxes)
		holeCount = len(holes)
		return nil
	})
	return teeCount, holeCount, alreadyEnriched, err
}
