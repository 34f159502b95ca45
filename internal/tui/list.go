package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/holonet/internal/domain"
	"github.com/mmcdole/holonet/internal/i18n"
	"github.com/mmcdole/holonet/internal/store"
	"github.com/mmcdole/holonet/internal/tui/styles"
)

// listView is the paged table of one resource type
type listView struct {
	kind      domain.Kind
	table     table.Model
	search    textinput.Model
	searching bool
	items     []domain.Resource
	width     int
}

func newListView(tr *i18n.Translator, kind domain.Kind, width, height int) *listView {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.PlaceholderStyle = styles.DimStyle

	l := &listView{
		kind:   kind,
		search: ti,
		table: table.New(
			table.WithFocused(true),
			table.WithStyles(tableStyles()),
		),
	}
	l.relabel(tr)
	l.resize(tr, width, height)
	return l
}

// relabel applies the current locale to headers and placeholder
func (l *listView) relabel(tr *i18n.Translator) {
	l.search.Placeholder = searchPlaceholder(tr, l.kind)
	l.table.SetColumns(tableColumns(tr, l.kind, l.width-6))
}

func (l *listView) resize(tr *i18n.Translator, width, height int) {
	l.width = width
	l.search.Width = max(width-8, 10)
	l.table.SetWidth(width)
	l.table.SetHeight(max(height, 3))
	l.table.SetColumns(tableColumns(tr, l.kind, width-6))
}

// sync copies the store's current page into the table
func (l *listView) sync(v store.View) {
	l.items = v.Items
	l.table.SetRows(tableRows(v.Items))
	if l.table.Cursor() >= len(v.Items) {
		l.table.SetCursor(max(len(v.Items)-1, 0))
	}
}

// selected returns the resource under the cursor
func (l *listView) selected() (domain.Resource, bool) {
	i := l.table.Cursor()
	if i < 0 || i >= len(l.items) {
		return nil, false
	}
	return l.items[i], true
}

func (l *listView) startSearch(current string) tea.Cmd {
	l.searching = true
	l.search.SetValue(current)
	l.search.CursorEnd()
	l.table.Blur()
	return l.search.Focus()
}

func (l *listView) stopSearch() {
	l.searching = false
	l.search.Blur()
	l.table.Focus()
}

// pageRequest returns the paging request for page with the current search
func pageRequest(v store.View, page int) domain.TableRequest {
	return domain.TableRequest{
		Pagination: domain.TablePagination{Page: page, RowsPerPage: v.Pagination.RowsPerPage},
		Filter:     v.SearchQuery,
	}
}
