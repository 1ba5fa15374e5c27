package search

import (
	"strings"

	"nurse-directory/internal/model"
)

// FilterNurses returns the nurses whose name, surname or "name surname"
// contains query, case-insensitively, in input order.
// A blank or whitespace-only query yields no results, not all of them.
func FilterNurses(query string, nurses []model.Nurse) []model.Nurse {
	if strings.TrimSpace(query) == "" {
		return []model.Nurse{}
	}

	q := strings.ToLower(query)
	matches := make([]model.Nurse, 0)
	for _, n := range nurses {
		if Matches(q, n) {
			matches = append(matches, n)
		}
	}
	return matches
}

// Matches expects an already lowercased query.
func Matches(lowerQuery string, n model.Nurse) bool {
	name := strings.ToLower(n.Name)
	surname := strings.ToLower(n.Surname)
	return strings.Contains(name, lowerQuery) ||
		strings.Contains(surname, lowerQuery) ||
		strings.Contains(name+" "+surname, lowerQuery)
}
