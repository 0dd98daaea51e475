package services

import (
	"context"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"smartspend/internal/core"
)

// SimilarCategory looks for an existing category that category is probably
// a typo of. It returns false when category already exists or nothing is
// close enough. Ties go to the alphabetically first category.
func (s *ExpenseService) SimilarCategory(ctx context.Context, category string) (string, bool) {
	category = core.NormalizeCategory(category)
	if category == "" {
		return "", false
	}

	known, err := s.store.Categories(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Category lookup failed", "error", err)
		return "", false
	}

	maxDistance := 2
	if utf8.RuneCountInString(category) <= 4 {
		maxDistance = 1
	}

	best, bestDistance := "", maxDistance+1
	for _, k := range known {
		if k == category {
			return "", false
		}
		if d := levenshtein.ComputeDistance(category, k); d < bestDistance {
			best, bestDistance = k, d
		}
	}
	return best, best != ""
}
