package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"nurse-directory/internal/model"
)

func roster() []model.Nurse {
	return []model.Nurse{
		{ID: 1, Name: "Ana", Surname: "Garcia", Username: "ana.g"},
		{ID: 2, Name: "Juan", Surname: "Perez", Username: "juan.p"},
		{ID: 3, Name: "Bob", Surname: "Smith", Username: "bob.s"},
		{ID: 4, Name: "Marta", Surname: "Lopez", Username: "zz.top"},
	}
}

func ids(nurses []model.Nurse) []int64 {
	out := make([]int64, 0, len(nurses))
	for _, n := range nurses {
		out = append(out, n.ID)
	}
	return out
}

func TestFilterNurses(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected []int64
	}{
		{name: "Substring in two names", query: "an", expected: []int64{1, 2}},
		{name: "Case insensitive", query: "BOB", expected: []int64{3}},
		{name: "Surname match", query: "mit", expected: []int64{3}},
		{name: "Full name across the space", query: "ana gar", expected: []int64{1}},
		{name: "Match spans name and surname", query: "n p", expected: []int64{2}},
		{name: "Username is not searched", query: "zz", expected: []int64{}},
		{name: "No match", query: "xyz", expected: []int64{}},
		{name: "Empty query", query: "", expected: []int64{}},
		{name: "Whitespace query", query: "   \t", expected: []int64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterNurses(tc.query, roster())
			assert.NotNil(t, got)
			assert.Equal(t, tc.expected, ids(got))
		})
	}
}

func TestFilterNurses_ExactSetEquivalence(t *testing.T) {
	queries := []string{"a", "an", "AR", "o", "ez", "n p", "smith", "q"}
	nurses := roster()

	for _, q := range queries {
		got := FilterNurses(q, nurses)

		var want []int64
		lq := strings.ToLower(q)
		for _, n := range nurses {
			full := strings.ToLower(n.Name + " " + n.Surname)
			if strings.Contains(strings.ToLower(n.Name), lq) ||
				strings.Contains(strings.ToLower(n.Surname), lq) ||
				strings.Contains(full, lq) {
				want = append(want, n.ID)
			}
		}
		if want == nil {
			want = []int64{}
		}
		assert.Equal(t, want, ids(got), "query %q", q)
	}
}

func TestFilterNurses_EmptyRoster(t *testing.T) {
	assert.Empty(t, FilterNurses("an", nil))
}
