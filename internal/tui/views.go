package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/holonet/internal/domain"
	"github.com/mmcdole/holonet/internal/store"
	"github.com/mmcdole/holonet/internal/tui/components"
	"github.com/mmcdole/holonet/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if m.jump.IsVisible() {
		return m.jump.View(m.tr.T("No data found"))
	}

	var body string
	switch r := m.top(); r.screen {
	case ScreenHome:
		body = m.renderHome()
	case ScreenList:
		body = m.renderList(r)
	case ScreenDetail:
		body = m.renderDetail(r)
	}

	return styles.PageStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		"",
		m.renderFooter(),
	))
}

func (m Model) renderHeader() string {
	title := "HOLONET"
	switch r := m.top(); r.screen {
	case ScreenList:
		title += " / " + kindTitle(m.tr, r.kind)
	case ScreenDetail:
		title += " / " + kindTitle(m.tr, r.kind)
		if item := m.currentItem(); item != nil {
			title += " / " + item.DisplayName()
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HeaderStyle.Render(title),
		" ",
		styles.DimBadgeStyle.Render(m.tr.Code()),
	)
}

func (m Model) renderFooter() string {
	var b strings.Builder
	if m.statusMsg != "" {
		b.WriteString(styles.ErrorStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(Keys))
	return b.String()
}

func (m Model) renderHome() string {
	var b strings.Builder
	for i, k := range domain.Kinds {
		b.WriteString(m.homeLine(kindTitle(m.tr, k), i == m.homeCursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.TitleStyle.Render(m.tr.T("Recently viewed")))
	b.WriteString("\n")
	if len(m.history) == 0 {
		b.WriteString(styles.DimStyle.Render(m.tr.T("Nothing viewed yet")))
		return b.String()
	}
	for i, v := range m.history {
		line := components.KindBadge(v.Kind) + " " + v.Name
		b.WriteString(m.homeLine(line, len(domain.Kinds)+i == m.homeCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) homeLine(text string, selected bool) string {
	text = styles.Truncate(text, m.contentWidth()-2)
	if selected {
		return styles.SelectedItemStyle.Render(text)
	}
	return styles.NormalItemStyle.Render(text)
}

func (m Model) renderList(r *route) string {
	v := m.reg.Handle(r.kind).View()

	var b strings.Builder
	if r.list.searching {
		b.WriteString(r.list.search.View())
	} else if v.SearchQuery != "" {
		b.WriteString(styles.AccentStyle.Render("/ " + v.SearchQuery))
	} else {
		b.WriteString(styles.DimStyle.Render(searchPlaceholder(m.tr, r.kind)))
	}
	b.WriteString("\n\n")

	switch {
	case v.Error != "":
		b.WriteString(m.renderError(v.Error))
	case v.IsLoading && len(v.Items) == 0:
		b.WriteString(m.spinner.View() + " " + m.tr.T("Loading..."))
	case len(v.Items) == 0:
		b.WriteString(styles.DimStyle.Render(m.tr.T("No data found")))
	default:
		b.WriteString(r.list.table.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderPager(v.Pagination, v.IsLoading))
	return b.String()
}

func (m Model) renderPager(p domain.Pagination, loading bool) string {
	line := m.tr.T("Page %d of %d", p.Page, p.PageCount()) + "  " + m.tr.T("%d results", p.RowsNumber)
	if loading {
		line = m.spinner.View() + " " + line
	}
	return styles.DimStyle.Render(line)
}

func (m Model) renderError(msg string) string {
	return styles.ErrorStyle.Render(msg) + "  " +
		styles.DimStyle.Render(fmt.Sprintf("[%s] %s", Keys.Retry.Help().Key, m.tr.T("Retry")))
}

func (m Model) renderDetail(r *route) string {
	h := m.reg.Handle(r.kind)
	v := h.View()
	item := m.currentItem()

	if item == nil {
		switch {
		case v.Error != "" && !v.IsLoadingItem:
			return m.renderError(v.Error)
		default:
			return m.spinner.View() + " " + m.tr.T("Loading...")
		}
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(item.DisplayName()))
	b.WriteString("\n\n")
	for _, f := range item.Fields() {
		b.WriteString(styles.LabelStyle.Render(m.tr.T(f.Label)))
		b.WriteString(styles.Truncate(f.Value, max(m.contentWidth()-26, 10)))
		b.WriteString("\n")
	}
	for _, l := range item.Links() {
		b.WriteString(styles.LabelStyle.Render(m.tr.T(l.Name)))
		b.WriteString(styles.LinkStyle.Render(m.linkName(l.URL)))
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  [%s]", Keys.Follow.Help().Key)))
		b.WriteString("\n")
	}

	rels := item.Relations()
	if len(rels) == 0 {
		return b.String()
	}
	tab := min(r.detail.tab, len(rels)-1)
	b.WriteString("\n")
	b.WriteString(m.renderTabs(rels, tab))
	b.WriteString("\n")
	b.WriteString(m.renderRelated(r.detail, rels[tab]))
	return b.String()
}

func (m Model) renderTabs(rels []domain.Relation, active int) string {
	tabs := make([]string, len(rels))
	for i, rel := range rels {
		label := fmt.Sprintf("%s (%d)", m.tr.T(rel.Name), len(rel.URLs))
		if i == active {
			tabs[i] = styles.ActiveTabStyle.Render(label)
		} else {
			tabs[i] = styles.TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderRelated(d *detailView, rel domain.Relation) string {
	var b strings.Builder
	q := d.query()
	if d.filtering {
		b.WriteString(d.filter.View())
	} else if q.Filter != "" {
		b.WriteString(styles.AccentStyle.Render("/ " + q.Filter))
	} else {
		b.WriteString(styles.DimStyle.Render(m.tr.T("Filter") + "..."))
	}
	b.WriteString("\n")

	loading := m.preloading[rel.Target]
	switch {
	case len(d.related) > 0:
		b.WriteString(d.table.View())
	case loading:
		b.WriteString(m.spinner.View() + " " + m.tr.T("Loading..."))
	default:
		b.WriteString(styles.DimStyle.Render(m.tr.T("No data found")))
	}
	b.WriteString("\n")

	pages := d.result.PageCount(d.rows)
	b.WriteString(styles.DimStyle.Render(
		m.tr.T("Page %d of %d", min(q.Page, pages), pages) + "  " + m.tr.T("%d results", d.result.Total),
	))
	return b.String()
}

// linkName returns the display name of a linked resource when its store has
// it loaded, else its ref
func (m Model) linkName(url string) string {
	ref, ok := domain.ParseRef(url)
	if !ok {
		return url
	}
	if name, ok := findName(m.reg.Handle(ref.Kind), ref); ok {
		return name
	}
	return ref.String()
}

func findName(h store.Handle, ref domain.Ref) (string, bool) {
	if h == nil {
		return "", false
	}
	for _, it := range h.Catalog() {
		if r, ok := domain.RefOf(it); ok && r == ref {
			return it.DisplayName(), true
		}
	}
	return "", false
}
