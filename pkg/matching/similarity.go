package matching

import (
	"github.com/Ware71/CIAGA-sub002/pkg/textnorm"
)

// Jaccard computes token-set similarity between two sets: the size of the
// intersection over the size of the union. Empty sets score zero.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// NameSimilarity scores two course names. The strict pass drops generic
// golf vocabulary; when it comes back exactly zero a relaxed pass keeps
// the generic words so short names like "Golf Club" aren't false negatives.
func NameSimilarity(a, b string) float64 {
	strict := Jaccard(
		textnorm.TokenSet(a, textnorm.ProfileSimilarity),
		textnorm.TokenSet(b, textnorm.ProfileSimilarity),
	)
	if strict > 0 {
		return strict
	}
	return Jaccard(
		textnorm.TokenSet(a, textnorm.ProfileNoise),
		textnorm.TokenSet(b, textnorm.ProfileNoise),
	)
}
