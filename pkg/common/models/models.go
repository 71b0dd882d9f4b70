package models

import (
	"time"

	"github.com/Ware71/CIAGA-sub002/pkg/common/config"
)

// ResolveRequest is the raw map-database record handed to the resolver.
type ResolveRequest struct {
	OSMID   string  `json:"osm_id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	City    string  `json:"city,omitempty"`
	Country string  `json:"country,omitempty"`
}

// ResolveResult is the structured outcome of one resolution call. Every
// path through the resolver returns one of these; soft failures carry a
// Reason and the diagnostic trail instead of an error.
type ResolveResult struct {
	CourseID    string              `json:"course_id"`
	Enriched    bool                `json:"enriched"`
	FromCache   bool                `json:"from_cache,omitempty"`
	TeeCount    int                 `json:"tee_count"`
	HoleCount   int                 `json:"hole_count"`
	MatchedName string              `json:"matched_name,omitempty"`
	MatchKm     float64             `json:"match_km,omitempty"`
	MatchScore  float64             `json:"match_score,omitempty"`
	MatchQuery  string              `json:"match_query,omitempty"`
	Reason      string              `json:"reason,omitempty"`
	Debug       []QueryTrail        `json:"debug,omitempty"`
	Policy      *config.MatchPolicy `json:"policy,omitempty"`
	City        string              `json:"city,omitempty"`
	Country     string              `json:"country,omitempty"`
}

// QueryTrail records what one catalog query attempt saw, for observability
// and threshold tuning.
type QueryTrail struct {
	Query        string            `json:"query"`
	ResultsCount int               `json:"resultsCount"`
	Top          []ScoredCandidate `json:"top,omitempty"`
	Error        string            `json:"error,omitempty"`
}

type ScoredCandidate struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Km         float64 `json:"km"`
	NameScore  float64 `json:"nameScore"`
	FinalScore float64 `json:"finalScore"`
}

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // enriched
	CourseID  string                 `json:"course_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}
