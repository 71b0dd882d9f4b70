package matching

import (
	"strings"

	"github.com/Ware71/CIAGA-sub002/pkg/textnorm"
)

// broadFallbackQuery trades all precision for recall; last resort only.
const broadFallbackQuery = "golf"

// QueryAttempt is one named search strategy against the catalog.
type QueryAttempt struct {
	Strategy string // original, cleaned, broad
	Query    string
}

// PlanQueries builds the ordered, de-duplicated list of catalog search
// queries for a raw name. Later entries trade precision for recall.
func PlanQueries(rawName string) []QueryAttempt {
	var plan []QueryAttempt
	seen := make(map[string]struct{})

	add := func(strategy, query string) {
		query = strings.TrimSpace(query)
		if query == "" {
			return
		}
		if _, ok := seen[query]; ok {
			return
		}
		seen[query] = struct{}{}
		plan = append(plan, QueryAttempt{Strategy: strategy, Query: query})
	}

	add("original", rawName)
	add("cleaned", strings.Join(textnorm.Tokens(rawName, textnorm.ProfileQuery), " "))
	add("broad", broadFallbackQuery)
	return plan
}
