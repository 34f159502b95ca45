package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/holonet/internal/domain"
	"github.com/mmcdole/holonet/internal/i18n"
	"github.com/mmcdole/holonet/internal/relation"
	"github.com/mmcdole/holonet/internal/tui/styles"
)

// detailView shows one resource with a related table per relation
type detailView struct {
	ref   domain.Ref
	tab   int
	rows  int // related rows per page
	width int

	queries   map[int]relation.Query // per tab
	filter    textinput.Model
	filtering bool

	table   table.Model
	related []domain.Resource
	result  relation.Result[domain.Resource]

	recorded  bool
	preloaded bool
}

func newDetailView(ref domain.Ref, rowsPerPage, width int) *detailView {
	if rowsPerPage <= 0 {
		rowsPerPage = relation.DefaultRowsPerPage
	}
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.PlaceholderStyle = styles.DimStyle

	return &detailView{
		ref:     ref,
		rows:    rowsPerPage,
		width:   width,
		queries: make(map[int]relation.Query),
		filter:  ti,
		table: table.New(
			table.WithFocused(true),
			table.WithStyles(tableStyles()),
			table.WithHeight(rowsPerPage+1),
		),
	}
}

// query returns the filter and page of the active tab
func (d *detailView) query() relation.Query {
	q, ok := d.queries[d.tab]
	if !ok {
		q = relation.Query{Page: 1}
	}
	q.RowsPerPage = d.rows
	return q
}

func (d *detailView) setQuery(q relation.Query) {
	d.queries[d.tab] = q
}

// switchTab moves by delta over n tabs, wrapping
func (d *detailView) switchTab(delta, n int) {
	if n == 0 {
		return
	}
	d.tab = ((d.tab+delta)%n + n) % n
	d.filter.SetValue(d.query().Filter)
	d.table.SetCursor(0)
}

// turnPage moves the active tab's local page, clamped to [1, pages]
func (d *detailView) turnPage(delta int) bool {
	q := d.query()
	page := q.Page + delta
	if page < 1 || page > d.result.PageCount(d.rows) {
		return false
	}
	q.Page = page
	d.setQuery(q)
	d.table.SetCursor(0)
	return true
}

// sync resolves the active relation of item into the related table
func (d *detailView) sync(tr *i18n.Translator, item domain.Resource, resolvers map[domain.Kind]*relation.Resolver[domain.Resource]) {
	rels := item.Relations()
	if len(rels) == 0 {
		d.related = nil
		d.result = relation.Result[domain.Resource]{}
		d.table.SetRows(nil)
		return
	}
	if d.tab >= len(rels) {
		d.tab = 0
	}
	rel := rels[d.tab]

	res := resolvers[rel.Target].Resolve(rel.URLs, d.query())
	d.result = res
	d.related = res.Rows
	d.table.SetColumns(tableColumns(tr, rel.Target, d.width-6))
	d.table.SetRows(tableRows(res.Rows))
	if d.table.Cursor() >= len(res.Rows) {
		d.table.SetCursor(max(len(res.Rows)-1, 0))
	}
}

// selected returns the related resource under the cursor
func (d *detailView) selected() (domain.Resource, bool) {
	i := d.table.Cursor()
	if i < 0 || i >= len(d.related) {
		return nil, false
	}
	return d.related[i], true
}

func (d *detailView) startFilter() tea.Cmd {
	d.filtering = true
	d.filter.SetValue(d.query().Filter)
	d.filter.CursorEnd()
	d.table.Blur()
	return d.filter.Focus()
}

// applyFilter stores the input as the tab filter and goes back to page 1
func (d *detailView) applyFilter() {
	q := d.query()
	q.Filter = d.filter.Value()
	q.Page = 1
	d.setQuery(q)
	d.stopFilter()
}

func (d *detailView) stopFilter() {
	d.filtering = false
	d.filter.Blur()
	d.table.Focus()
}
