package tui

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/mmcdole/holonet/internal/domain"
	"github.com/mmcdole/holonet/internal/i18n"
	"github.com/mmcdole/holonet/internal/tui/styles"
)

// columnLabels are the headers of the list and related tables. They label
// the values of Resource.SearchFields, in the same order.
var columnLabels = map[domain.Kind][]string{
	domain.KindFilms:     {"Title", "Director", "Producer"},
	domain.KindPeople:    {"Name", "Gender", "Birth year"},
	domain.KindPlanets:   {"Name", "Climate", "Terrain"},
	domain.KindSpecies:   {"Name", "Classification", "Language"},
	domain.KindStarships: {"Name", "Model", "Class"},
	domain.KindVehicles:  {"Name", "Model", "Class"},
}

// kindTitles are the translation keys of the resource type names
var kindTitles = map[domain.Kind]string{
	domain.KindFilms:     "Films",
	domain.KindPeople:    "People",
	domain.KindPlanets:   "Planets",
	domain.KindSpecies:   "Species",
	domain.KindStarships: "Starships",
	domain.KindVehicles:  "Vehicles",
}

func kindTitle(tr *i18n.Translator, kind domain.Kind) string {
	return tr.T(kindTitles[kind])
}

func searchPlaceholder(tr *i18n.Translator, kind domain.Kind) string {
	return tr.T("Search " + string(kind) + "...")
}

// tableColumns splits width over the kind's columns, giving the first one
// the largest share.
func tableColumns(tr *i18n.Translator, kind domain.Kind, width int) []table.Column {
	labels := columnLabels[kind]
	width = max(width, 30)
	first := width * 2 / 5
	rest := (width - first) / max(len(labels)-1, 1)

	cols := make([]table.Column, len(labels))
	for i, l := range labels {
		w := rest
		if i == 0 {
			w = first
		}
		cols[i] = table.Column{Title: tr.T(l), Width: w}
	}
	return cols
}

func tableRows(items []domain.Resource) []table.Row {
	rows := make([]table.Row, len(items))
	for i, it := range items {
		rows[i] = table.Row(it.SearchFields())
	}
	return rows
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true)
	s.Selected = s.Selected.Foreground(styles.White).Background(styles.SlateLight)
	return s
}
