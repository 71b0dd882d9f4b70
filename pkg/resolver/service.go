package resolver

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"github.com/Ware71/CIAGA-sub002/pkg/common/config"
	"github.com/Ware71/CIAGA-sub002/pkg/common/logger"
	"github.com/Ware71/CIAGA-sub002/pkg/common/models"
	"github.com/Ware71/CIAGA-sub002/pkg/course"
	"github.com/Ware71/CIAGA-sub002/pkg/matching"
	"github.com/Ware71/CIAGA-sub002/pkg/teeingest"
	"github.com/Ware71/CIAGA-sub002/pkg/textnorm"
)

// Store is the slice of the course repository the resolver depends on.
type Store interface {
	FindBySourceID(ctx context.Context, osmID string) (*course.Course, error)
	FindWithTees(ctx context.Context, id string) (*course.Course, error)
	Create(ctx context.Context, crs *course.Course) error
	BackfillLocation(ctx context.Context, courseID string, city, country string) error
	TeeBoxCount(ctx context.Context, courseID string) (int64, error)
	HoleCount(ctx context.Context, courseID string) (int64, error)
	ReplaceEnrichment(ctx context.Context, crs *course.Course, teeBoxes []course.TeeBox, holes []course.Hole) (int, int, bool, error)
}

// Geocoder backfills city/country from coordinates; failures are soft.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (city, country string)
}

// EventPublisher emits course lifecycle events after a commit.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, courseID string, data map[string]interface{}) error
}

// Service is the idempotent resolution entry point: cache check, candidate
// match, tee ingestion and the enrichment commit, in strict sequence.
type Service struct {
	store    Store
	matcher  *matching.Matcher
	geocoder Geocoder
	producer EventPublisher
	dlq      EventPublisher
	policy   config.MatchPolicy
	hasKey   bool
}

func NewService(store Store, matcher *matching.Matcher, geocoder Geocoder, producer, dlq EventPublisher, cfg *config.Config) *Service {
	return &Service{
		store:    store,
		matcher:  matcher,
		geocoder: geocoder,
		producer: producer,
		dlq:      dlq,
		policy:   cfg.Match,
		hasKey:   cfg.CatalogAPIKey != "",
	}
}

func (s *Service) Resolve(ctx context.Context, req models.ResolveRequest) (*models.ResolveResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	crs, err := s.store.FindBySourceID(ctx, req.OSMID)
	switch {
	case err == nil:
		if crs.CatalogID != nil {
			teeCount, err := s.store.TeeBoxCount(ctx, crs.ID)
			if err != nil {
				return &models.ResolveResult{CourseID: crs.ID}, fmt.Errorf("counting tee boxes: %w", err)
			}
			if teeCount > 0 {
				holeCount, err := s.store.HoleCount(ctx, crs.ID)
				if err != nil {
					return &models.ResolveResult{CourseID: crs.ID}, fmt.Errorf("counting holes: %w", err)
				}
				return &models.ResolveResult{
					CourseID:  crs.ID,
					Enriched:  true,
					FromCache: true,
					TeeCount:  int(teeCount),
					HoleCount: int(holeCount),
					City:      deref(crs.City),
					Country:   deref(crs.Country),
				}, nil
			}
		}
		if err := s.backfillLocation(ctx, crs, req); err != nil {
			return &models.ResolveResult{CourseID: crs.ID}, err
		}
	case errors.Is(err, course.ErrNotFound):
		crs = s.newCourse(ctx, req)
		if err := s.store.Create(ctx, crs); err != nil {
			return nil, fmt.Errorf("creating course: %w", err)
		}
	default:
		return nil, fmt.Errorf("looking up course: %w", err)
	}

	if !s.hasKey {
		return &models.ResolveResult{
			CourseID: crs.ID,
			Enriched: false,
			Reason:   "Missing GOLF_CATALOG_API_KEY",
			City:     deref(crs.City),
			Country:  deref(crs.Country),
		}, nil
	}

	unnamed := textnorm.IsUnnamed(req.Name)
	match, trail := s.matcher.Match(ctx, matching.Input{
		Name:    req.Name,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Unnamed: unnamed,
	})
	if match == nil {
		logger.Log.WithFields(map[string]interface{}{
			"osm_id":  req.OSMID,
			"unnamed": unnamed,
		}).Info("no catalog match")
		return &models.ResolveResult{
			CourseID: crs.ID,
			Enriched: false,
			Reason:   "No catalog match",
			Debug:    trail,
			Policy:   &s.policy,
			City:     deref(crs.City),
			Country:  deref(crs.Country),
		}, nil
	}

	crs.Name = textnorm.ResolveDisplayName(req.Name, match.Course.Name())
	crs.Source = course.SourceMapCatalog
	crs.CatalogID = &match.Course.ID
	crs.CatalogPayload = datatypes.JSON(match.Course.Raw)

	records := teeingest.Build(match.Course.Tees)
	teeBoxes, holes := course.BuildRows(crs.ID, records)

	teeCount, holeCount, alreadyEnriched, err := s.store.ReplaceEnrichment(ctx, crs, teeBoxes, holes)
	if err != nil {
		return &models.ResolveResult{CourseID: crs.ID}, fmt.Errorf("committing enrichment: %w", err)
	}

	result := &models.ResolveResult{
		CourseID:    crs.ID,
		Enriched:    true,
		FromCache:   alreadyEnriched,
		TeeCount:    teeCount,
		HoleCount:   holeCount,
		MatchedName: match.Course.Name(),
		MatchKm:     match.Km,
		MatchScore:  match.FinalScore,
		MatchQuery:  match.Query,
		Debug:       trail,
		City:        deref(crs.City),
		Country:     deref(crs.Country),
	}

	if !alreadyEnriched {
		s.publishEnriched(ctx, crs, result)
	}

	return result, nil
}

// newCourse builds the unenriched row for a first-seen source id. City and
// country come from the caller, falling back to the reverse geocoder.
func (s *Service) newCourse(ctx context.Context, req models.ResolveRequest) *course.Course {
	city, country := req.City, req.Country
	if (city == "" || country == "") && s.geocoder != nil {
		gcCity, gcCountry := s.geocoder.Reverse(ctx, req.Lat, req.Lng)
		if city == "" {
			city = gcCity
		}
		if country == "" {
			country = gcCountry
		}
	}

	return &course.Course{
		OSMID:        req.OSMID,
		Name:         req.Name,
		OriginalName: req.Name,
		Lat:          req.Lat,
		Lng:          req.Lng,
		City:         strPtr(city),
		Country:      strPtr(country),
		Source:       course.SourceMap,
	}
}

// backfillLocation fills missing city/country on an existing course. The
// geocoder is consulted only for fields the caller didn't supply.
func (s *Service) backfillLocation(ctx context.Context, crs *course.Course, req models.ResolveRequest) error {
	if crs.City != nil && crs.Country != nil {
		return nil
	}

	city, country := req.City, req.Country
	needGeo := (crs.City == nil && city == "") || (crs.Country == nil && country == "")
	if needGeo && s.geocoder != nil {
		gcCity, gcCountry := s.geocoder.Reverse(ctx, req.Lat, req.Lng)
		if city == "" {
			city = gcCity
		}
		if country == "" {
			country = gcCountry
		}
	}

	if err := s.store.BackfillLocation(ctx, crs.ID, city, country); err != nil {
		return fmt.Errorf("backfilling location: %w", err)
	}
	if crs.City == nil {
		crs.City = strPtr(city)
	}
	if crs.Country == nil {
		crs.Country = strPtr(country)
	}
	return nil
}

func (s *Service) publishEnriched(ctx context.Context, crs *course.Course, result *models.ResolveResult) {
	if s.producer == nil {
		return
	}
	payload := map[string]interface{}{
		"osm_id":      crs.OSMID,
		"catalog_id":  deref(crs.CatalogID),
		"name":        crs.Name,
		"tee_count":   result.TeeCount,
		"hole_count":  result.HoleCount,
		"match_km":    result.MatchKm,
		"match_score": result.MatchScore,
	}
	if err := s.producer.PublishEvent(ctx, "enriched", crs.ID, payload); err != nil {
		logger.Log.WithError(err).Error("failed to publish enrichment event")
		if s.dlq != nil {
			_ = s.dlq.PublishEvent(ctx, "enriched", crs.ID, payload)
		}
	}
}

// GetCourse returns a course with its tee boxes and holes.
func (s *Service) GetCourse(ctx context.Context, id string) (*course.Course, error) {
	return s.store.FindWithTees(ctx, id)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
