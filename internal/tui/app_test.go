package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/holonet/internal/domain"
	"github.com/mmcdole/holonet/internal/i18n"
	"github.com/mmcdole/holonet/internal/session"
	"github.com/mmcdole/holonet/internal/store"
	"github.com/mmcdole/holonet/internal/tui/components"
)

const testBase = "https://swapi.test/api/"

func url(kind domain.Kind, id int) string {
	return fmt.Sprintf("%s%s/%d/", testBase, kind, id)
}

func meta(kind domain.Kind, id int) domain.Meta {
	return domain.Meta{URL: url(kind, id)}
}

// staticRepo serves a fixed single-page catalog
type staticRepo[T domain.Resource] struct {
	items []T
}

func (r staticRepo[T]) FetchMany(_ context.Context, _ int, search string) (domain.Page[T], error) {
	var out []T
	for _, it := range r.items {
		if strings.Contains(strings.ToLower(it.DisplayName()), strings.ToLower(search)) {
			out = append(out, it)
		}
	}
	return domain.Page[T]{Count: len(out), Results: out}, nil
}

func (r staticRepo[T]) FetchOne(_ context.Context, id int) (T, error) {
	for _, it := range r.items {
		if domain.ExtractID(it.ResourceURL()) == id {
			return it, nil
		}
	}
	var zero T
	return zero, &domain.FetchError{Code: domain.CodeAPI, Message: "Not found."}
}

func newTestRegistry(t *testing.T) *store.Registry {
	t.Helper()
	reg, err := store.NewRegistry(store.Sources{
		Films: staticRepo[domain.Film]{items: []domain.Film{{
			Meta:       meta(domain.KindFilms, 1),
			Title:      "A New Hope",
			Characters: []string{url(domain.KindPeople, 1), url(domain.KindPeople, 2)},
			Planets:    []string{url(domain.KindPlanets, 1)},
		}}},
		People: staticRepo[domain.Person]{items: []domain.Person{
			{Meta: meta(domain.KindPeople, 1), Name: "Luke Skywalker", Homeworld: url(domain.KindPlanets, 1)},
			{Meta: meta(domain.KindPeople, 2), Name: "C-3PO"},
			{Meta: meta(domain.KindPeople, 3), Name: "R2-D2"},
		}},
		Planets: staticRepo[domain.Planet]{items: []domain.Planet{
			{Meta: meta(domain.KindPlanets, 1), Name: "Tatooine"},
		}},
		Species:   staticRepo[domain.Species]{},
		Starships: staticRepo[domain.Starship]{},
		Vehicles:  staticRepo[domain.Vehicle]{},
	}, store.Options{})
	require.NoError(t, err)
	return reg
}

// pagedRepo serves its items in server pages of size
type pagedRepo[T domain.Resource] struct {
	staticRepo[T]
	size int
}

func (r pagedRepo[T]) FetchMany(ctx context.Context, page int, search string) (domain.Page[T], error) {
	all, _ := r.staticRepo.FetchMany(ctx, page, search)
	start := min((page-1)*r.size, len(all.Results))
	end := min(start+r.size, len(all.Results))
	out := domain.Page[T]{Count: all.Count, Results: all.Results[start:end]}
	if end < len(all.Results) {
		next := fmt.Sprintf("%s?page=%d", testBase, page+1)
		out.Next = &next
	}
	return out, nil
}

func newTestModel(t *testing.T) (Model, *session.Store) {
	t.Helper()
	sess, err := session.Open("")
	require.NoError(t, err)
	m := NewModel(newTestRegistry(t), Options{Session: sess})
	t.Cleanup(m.Close)
	return m, sess
}

// drain runs cmd and every follow-up command it produces, feeding the
// messages back into the model. Store notifications and ticks are skipped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, StoreChangedMsg, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestHomeOpensList(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, ScreenHome, m.Screen())

	// films is the first entry
	m, cmd := press(m, enter)
	require.Equal(t, ScreenList, m.Screen())
	m = drain(t, m, cmd)

	items := m.top().list.items
	require.Len(t, items, 1)
	assert.Equal(t, "A New Hope", items[0].DisplayName())
	assert.Contains(t, m.View(), "A New Hope")

	m, _ = press(m, esc)
	assert.Equal(t, ScreenHome, m.Screen())
}

func TestListSearch(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(m, down)
	m, cmd := press(m, enter)
	m = drain(t, m, cmd)
	require.Len(t, m.top().list.items, 3)

	m, _ = press(m, runes("/"))
	require.True(t, m.top().list.searching)
	m, _ = press(m, runes("sky"))
	m, cmd = press(m, enter)
	m = drain(t, m, cmd)

	assert.False(t, m.top().list.searching)
	v := m.reg.People.State()
	assert.Equal(t, "sky", v.SearchQuery)
	require.Len(t, m.top().list.items, 1)
	assert.Equal(t, "Luke Skywalker", m.top().list.items[0].DisplayName())
}

func TestDetailResolvesRelationsAndRecordsVisit(t *testing.T) {
	m, sess := newTestModel(t)

	next, cmd := m.openDetail(domain.Ref{Kind: domain.KindFilms, ID: 1})
	m = drain(t, next.(Model), cmd)

	require.Equal(t, ScreenDetail, m.Screen())
	d := m.top().detail
	require.Len(t, d.related, 2)
	assert.Equal(t, "Luke Skywalker", d.related[0].DisplayName())
	assert.Equal(t, "C-3PO", d.related[1].DisplayName())
	assert.True(t, m.reg.People.FullyLoaded())

	hist := sess.History()
	require.Len(t, hist, 1)
	assert.Equal(t, "A New Hope", hist[0].Name)
	assert.Len(t, m.history, 1)

	// planets tab
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Len(t, m.top().detail.related, 1)
	assert.Equal(t, "Tatooine", m.top().detail.related[0].DisplayName())

	// cross-entity navigation from a related row, then back
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, cmd = press(m, enter)
	m = drain(t, m, cmd)
	require.Equal(t, domain.Ref{Kind: domain.KindPeople, ID: 1}, m.top().detail.ref)
	require.NotNil(t, m.currentItem())
	assert.Equal(t, "Luke Skywalker", m.currentItem().DisplayName())

	// homeworld link
	m, cmd = press(m, runes("g"))
	m = drain(t, m, cmd)
	assert.Equal(t, domain.Ref{Kind: domain.KindPlanets, ID: 1}, m.top().detail.ref)

	m, cmd = press(m, esc)
	m = drain(t, m, cmd)
	m, cmd = press(m, esc)
	m = drain(t, m, cmd)
	require.NotNil(t, m.currentItem())
	assert.Equal(t, "A New Hope", m.currentItem().DisplayName())
}

func TestDetailFilter(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.openDetail(domain.Ref{Kind: domain.KindFilms, ID: 1})
	m = drain(t, next.(Model), cmd)

	m, _ = press(m, runes("f"))
	require.True(t, m.top().detail.filtering)
	m, _ = press(m, runes("3po"))
	require.Len(t, m.top().detail.related, 1)
	assert.Equal(t, "C-3PO", m.top().detail.related[0].DisplayName())

	m, _ = press(m, enter)
	assert.False(t, m.top().detail.filtering)
	assert.Equal(t, "3po", m.top().detail.query().Filter)

	// esc while filtering clears the filter
	m, _ = press(m, runes("f"))
	m, _ = press(m, esc)
	assert.Len(t, m.top().detail.related, 2)
}

func TestDetailNotFound(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.openDetail(domain.Ref{Kind: domain.KindPlanets, ID: 99})
	m = drain(t, next.(Model), cmd)

	assert.Nil(t, m.currentItem())
	assert.Equal(t, "Not found.", m.reg.Planets.State().Error)
	assert.Contains(t, m.View(), "Not found.")
}

func TestJumpOpensDetail(t *testing.T) {
	m, _ := newTestModel(t)
	_, err := m.reg.People.EnsureFullyLoaded(context.Background())
	require.NoError(t, err)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	require.True(t, m.jump.IsVisible())
	m, _ = press(m, runes("luke"))
	res, ok := m.jump.Selected()
	require.True(t, ok)
	assert.Equal(t, "Luke Skywalker", res.Title)

	m, cmd := press(m, enter)
	m = drain(t, m, cmd)
	assert.False(t, m.jump.IsVisible())
	require.Equal(t, ScreenDetail, m.Screen())
	assert.Equal(t, domain.Ref{Kind: domain.KindPeople, ID: 1}, m.top().detail.ref)
}

func TestLocaleCycleIsSaved(t *testing.T) {
	m, sess := newTestModel(t)
	assert.Equal(t, "EN", m.Translator().Code())

	m, cmd := press(m, runes("L"))
	assert.Equal(t, "NL", m.Translator().Code())
	m = drain(t, m, cmd)

	tag, ok := sess.Locale()
	require.True(t, ok)
	assert.Equal(t, i18n.DutchNL.String(), tag)
	assert.Contains(t, m.View(), "Recent bekeken")
}

func TestHighlightMatches(t *testing.T) {
	out := components.HighlightMatches("Luke Skywalker", []int{0, 1, 2, 3}, false)
	assert.Equal(t, 14, lipgloss.Width(out))
	assert.Contains(t, out, "Luke")
	assert.Contains(t, out, " Skywalker")

	assert.Equal(t, 5, lipgloss.Width(components.HighlightMatches("Naboo", nil, true)))
}

func TestTableColumns(t *testing.T) {
	tr := i18n.New(i18n.EnglishUS)
	cols := tableColumns(tr, domain.KindPeople, 100)
	require.Len(t, cols, 3)
	assert.Equal(t, "Name", cols[0].Title)
	assert.Equal(t, "Birth year", cols[2].Title)
	assert.Equal(t, 40, cols[0].Width)
	assert.Equal(t, 30, cols[1].Width)

	nl := tableColumns(i18n.New(i18n.DutchNL), domain.KindPeople, 100)
	assert.Equal(t, "Naam", nl[0].Title)
}

func TestKindBadges(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range domain.Kinds {
		b := components.KindBadge(k)
		assert.Len(t, b, 3)
		assert.False(t, seen[b], b)
		seen[b] = true
	}
}

func TestBackToListAfterSiblingPreload(t *testing.T) {
	film := url(domain.KindFilms, 1)
	var people []domain.Person
	var characters []string
	for id := 1; id <= 6; id++ {
		people = append(people, domain.Person{
			Meta:  meta(domain.KindPeople, id),
			Name:  fmt.Sprintf("Person %d", id),
			Films: []string{film},
		})
		characters = append(characters, url(domain.KindPeople, id))
	}
	reg, err := store.NewRegistry(store.Sources{
		Films: staticRepo[domain.Film]{items: []domain.Film{{
			Meta: meta(domain.KindFilms, 1), Title: "A New Hope", Characters: characters,
		}}},
		People:    pagedRepo[domain.Person]{staticRepo: staticRepo[domain.Person]{items: people}, size: 2},
		Planets:   staticRepo[domain.Planet]{},
		Species:   staticRepo[domain.Species]{},
		Starships: staticRepo[domain.Starship]{},
		Vehicles:  staticRepo[domain.Vehicle]{},
	}, store.Options{RowsPerPage: 2})
	require.NoError(t, err)
	m := NewModel(reg, Options{})
	t.Cleanup(m.Close)

	next, cmd := m.openList(domain.KindPeople)
	m = drain(t, next.(Model), cmd)
	m, cmd = press(m, runes("n"))
	m = drain(t, m, cmd)
	require.Equal(t, 2, reg.People.State().Pagination.Page)
	require.Len(t, m.top().list.items, 2)

	// person 3, then their film, which preloads every person
	next, cmd = m.openDetail(domain.Ref{Kind: domain.KindPeople, ID: 3})
	m = drain(t, next.(Model), cmd)
	next, cmd = m.openDetail(domain.Ref{Kind: domain.KindFilms, ID: 1})
	m = drain(t, next.(Model), cmd)
	require.True(t, reg.People.FullyLoaded())
	require.Len(t, reg.People.State().Items, 6)

	m, cmd = press(m, esc)
	m = drain(t, m, cmd)
	m, cmd = press(m, esc)
	m = drain(t, m, cmd)

	require.Equal(t, ScreenList, m.Screen())
	v := reg.People.State()
	assert.Equal(t, 2, v.Pagination.Page)
	assert.Equal(t, 6, v.Pagination.RowsNumber)
	items := m.top().list.items
	require.Len(t, items, 2)
	assert.Equal(t, "Person 3", items[0].DisplayName())
	assert.Equal(t, "Person 4", items[1].DisplayName())
}
