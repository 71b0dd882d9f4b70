package matching

import (
	"context"
	"sort"

	"github.com/Ware71/CIAGA-sub002/pkg/catalog"
	"github.com/Ware71/CIAGA-sub002/pkg/common/config"
	"github.com/Ware71/CIAGA-sub002/pkg/common/logger"
	"github.com/Ware71/CIAGA-sub002/pkg/common/models"
	"github.com/Ware71/CIAGA-sub002/pkg/geo"
)

const (
	closenessWeight = 0.85
	nameWeight      = 0.15
	trailTopSize    = 5
)

// Input is one location record to match against the catalog.
type Input struct {
	Name    string
	Lat     float64
	Lng     float64
	Unnamed bool
}

// Match is the accepted best candidate.
type Match struct {
	Course     catalog.Course
	Km         float64
	NameScore  float64
	FinalScore float64
	Query      string
	Strategy   string
}

// Matcher drives catalog lookups across the planned query list, gates
// candidates on distance and name similarity, and picks the global best.
type Matcher struct {
	client catalog.Client
	policy config.MatchPolicy
}

func NewMatcher(client catalog.Client, policy config.MatchPolicy) *Matcher {
	return &Matcher{client: client, policy: policy}
}

// Match returns the accepted candidate, or nil with the full diagnostic
// trail when nothing clears the active gates and threshold. Upstream
// errors are recorded per query and treated as zero candidates.
func (m *Matcher) Match(ctx context.Context, input Input) (*Match, []models.QueryTrail) {
	maxKm := m.policy.MaxKmNamed
	minFinal := m.policy.MinFinalNamed
	if input.Unnamed {
		maxKm = m.policy.MaxKmUnnamed
		minFinal = m.policy.MinFinalUnnamed
	}

	var best *Match
	var trail []models.QueryTrail

	for _, attempt := range PlanQueries(input.Name) {
		courses, err := m.client.Search(ctx, attempt.Query)
		if err != nil {
			logger.Log.WithError(err).WithField("query", attempt.Query).Warn("catalog query failed")
			trail = append(trail, models.QueryTrail{Query: attempt.Query, Error: err.Error()})
			continue
		}

		var scored []models.ScoredCandidate
		for _, course := range courses {
			if !course.HasCoords {
				continue
			}

			km := geo.HaversineKm(input.Lat, input.Lng, course.Lat, course.Lng)

			nameScore := 0.0
			if !input.Unnamed {
				nameScore = NameSimilarity(input.Name, course.Name())
			}

			entry := models.ScoredCandidate{
				ID:        course.ID,
				Name:      course.Name(),
				Km:        km,
				NameScore: nameScore,
			}

			accepted := km <= maxKm && (input.Unnamed || nameScore >= m.policy.MinNameSim)
			if accepted {
				entry.FinalScore = m.blend(input.Unnamed, km, maxKm, nameScore)
			}
			scored = append(scored, entry)
			if !accepted {
				continue
			}

			if best == nil ||
				entry.FinalScore > best.FinalScore ||
				(entry.FinalScore == best.FinalScore && km < best.Km) {
				best = &Match{
					Course:     course,
					Km:         km,
					NameScore:  nameScore,
					FinalScore: entry.FinalScore,
					Query:      attempt.Query,
					Strategy:   attempt.Strategy,
				}
			}
		}

		trail = append(trail, models.QueryTrail{
			Query:        attempt.Query,
			ResultsCount: len(courses),
			Top:          topScored(scored),
		})

		if best != nil && best.FinalScore >= minFinal {
			break
		}
	}

	if best == nil || best.FinalScore < minFinal {
		return nil, trail
	}
	return best, trail
}

func (m *Matcher) blend(unnamed bool, km, maxKm, nameScore float64) float64 {
	closeness := 1 - km/maxKm
	if closeness < 0 {
		closeness = 0
	}
	if closeness > 1 {
		closeness = 1
	}
	if unnamed {
		return closeness
	}
	return closenessWeight*closeness + nameWeight*nameScore
}

func topScored(scored []models.ScoredCandidate) []models.ScoredCandidate {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].FinalScore != scored[j].FinalScore {
			return scored[i].FinalScore > scored[j].FinalScore
		}
		return scored[i].Km < scored[j].Km
	})
	if len(scored) > trailTopSize {
		scored = scored[:trailTopSize]
	}
	return scored
}
