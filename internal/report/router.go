package report

import (
	"strings"

	"crimewatch/backend/internal/models"
)

// MatchAuthorities maps the classifier's department hints onto concrete
// authority accounts. Each hint is matched case-insensitively as a
// substring of the registered department names; the first match per
// hint wins. With no hints at all, every routable authority is matched,
// so no report goes silently unrouted. The result is deduped by
// authority id, in first-match order.
func MatchAuthorities(hints []string, authorities []models.Authority) []uint {
	if len(hints) == 0 {
		ids := make([]uint, 0, len(authorities))
		for _, a := range authorities {
			ids = append(ids, a.ID)
		}
		return ids
	}

	var matched []uint
	seen := make(map[uint]bool)

	for _, hint := range hints {
		hint = strings.TrimSpace(hint)
		if hint == "" {
			continue
		}
		needle := strings.ToLower(hint)

		for _, a := range authorities {
			dept := strings.ToLower(a.Department)
			if strings.Contains(dept, needle) || strings.Contains(needle, dept) {
				if !seen[a.ID] {
					seen[a.ID] = true
					matched = append(matched, a.ID)
				}
				break
			}
		}
	}
	return matched
}
