package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/holonet/internal/domain"
)

func meta(kind domain.Kind, id int) domain.Meta {
	return domain.Meta{URL: fmt.Sprintf("https://swapi.test/api/%s/%d/", kind, id)}
}

type fakeSource struct {
	kind  domain.Kind
	items []domain.Resource
}

func (f fakeSource) Kind() domain.Kind          { return f.kind }
func (f fakeSource) Catalog() []domain.Resource { return f.items }

func testSources() []Source {
	return []Source{
		fakeSource{domain.KindFilms, []domain.Resource{
			domain.Film{Meta: meta(domain.KindFilms, 1), Title: "A New Hope"},
		}},
		fakeSource{domain.KindPeople, []domain.Resource{
			domain.Person{Meta: meta(domain.KindPeople, 1), Name: "Luke Skywalker"},
			domain.Person{Meta: meta(domain.KindPeople, 11), Name: "Anakin Skywalker"},
		}},
		fakeSource{domain.KindPlanets, []domain.Resource{
			domain.Planet{Meta: meta(domain.KindPlanets, 1), Name: "Tatooine"},
			domain.Planet{Meta: meta(domain.KindPlanets, 8), Name: "Naboo"},
		}},
		fakeSource{domain.KindStarships, []domain.Resource{
			domain.Starship{Meta: meta(domain.KindStarships, 10), Name: "Millennium Falcon"},
		}},
	}
}

func titles(rs []Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}

func TestFindSubsequence(t *testing.T) {
	s := NewService(0, nil)
	require.Equal(t, 6, s.Rebuild(testSources()...))

	rs := s.Find("Luke")
	require.Len(t, rs, 1)
	assert.Equal(t, domain.Ref{Kind: domain.KindPeople, ID: 1}, rs[0].Ref)
	assert.Len(t, rs[0].MatchedIndexes, 4)
	assert.Positive(t, rs[0].Score)

	assert.ElementsMatch(t, []string{"Luke Skywalker", "Anakin Skywalker"}, titles(s.Find("sky")))
}

func TestFindFallsBackToTypos(t *testing.T) {
	s := NewService(0, nil)
	s.Rebuild(testSources()...)

	rs := s.Find("tatuine")
	require.Len(t, rs, 1)
	assert.Equal(t, "Tatooine", rs[0].Title)
	assert.Nil(t, rs[0].MatchedIndexes)
	assert.Equal(t, -2, rs[0].Score)

	// two edits exceed the budget of a four letter word
	assert.Empty(t, s.Find("nab0"))
	assert.Empty(t, s.Find("zzzz"))
}

func TestFindEmptyQueryAndIndex(t *testing.T) {
	s := NewService(0, nil)
	assert.Nil(t, s.Find("luke"))

	s.Rebuild(testSources()...)
	assert.Nil(t, s.Find("   "))
}

func TestFindLimit(t *testing.T) {
	s := NewService(2, nil)
	s.Rebuild(testSources()...)
	assert.Len(t, s.Find("a"), 2)
}

func TestIndexSkipsDuplicatesAndIDless(t *testing.T) {
	s := NewService(0, nil)
	luke := domain.Person{Meta: meta(domain.KindPeople, 1), Name: "Luke Skywalker"}
	s.Index([]domain.Resource{luke, luke})
	s.Index([]domain.Resource{luke, domain.Person{Name: "No Url"}})
	assert.Equal(t, 1, s.Count())

	// rebuild starts over
	assert.Equal(t, 0, s.Rebuild())
}

func TestTypoDistance(t *testing.T) {
	tests := []struct {
		query string
		title string
		want  int
	}{
		{"tatooine", "tatooine", 0},
		{"falcn", "millennium falcon", 1},
		{"milenium falcom", "millennium falcon", 3},
		{"han", "han solo", -1},
		{"hoth", "dagobah", -1},
		{"", "naboo", -1},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, typoDistance(tt.query, tt.title))
		})
	}
}

func TestAllowedTypos(t *testing.T) {
	assert.Equal(t, 0, allowedTypos(3))
	assert.Equal(t, 1, allowedTypos(4))
	assert.Equal(t, 1, allowedTypos(6))
	assert.Equal(t, 2, allowedTypos(7))
}
