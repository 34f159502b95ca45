package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/holonet/internal/domain"
	"github.com/mmcdole/holonet/internal/i18n"
	"github.com/mmcdole/holonet/internal/relation"
	"github.com/mmcdole/holonet/internal/search"
	"github.com/mmcdole/holonet/internal/session"
	"github.com/mmcdole/holonet/internal/store"
	"github.com/mmcdole/holonet/internal/tui/components"
	"github.com/mmcdole/holonet/internal/tui/styles"
)

// Screen identifies the page on top of the navigation stack
type Screen int

const (
	ScreenHome Screen = iota
	ScreenList
	ScreenDetail
)

// route is one entry of the navigation stack
type route struct {
	screen Screen
	kind   domain.Kind
	list   *listView
	detail *detailView
}

// Vertical chrome: header, blank, footer/help
const chromeHeight = 6

// Options are the optional collaborators of the model.
type Options struct {
	Session            *session.Store // nil disables history and locale persistence
	Translator         *i18n.Translator
	Jump               *search.Service
	RelatedRowsPerPage int
	Logger             *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	reg       *store.Registry
	handles   []store.Handle
	resolvers map[domain.Kind]*relation.Resolver[domain.Resource]
	observer  *ChannelObserver

	sess        *session.Store
	tr          *i18n.Translator
	jumpSvc     *search.Service
	relatedRows int
	logger      *slog.Logger

	stack      []route
	homeCursor int
	history    []session.Visit
	preloading map[domain.Kind]bool

	jump    components.Jump
	spinner spinner.Model
	help    help.Model

	width     int
	height    int
	statusMsg string
}

// NewModel creates the application model over the store registry
func NewModel(reg *store.Registry, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tr := opts.Translator
	if tr == nil {
		tr = i18n.New(i18n.EnglishUS)
	}
	jumpSvc := opts.Jump
	if jumpSvc == nil {
		jumpSvc = search.NewService(0, logger)
	}

	handles := make([]store.Handle, 0, len(domain.Kinds))
	resolvers := make(map[domain.Kind]*relation.Resolver[domain.Resource], len(domain.Kinds))
	for _, k := range domain.Kinds {
		h := reg.Handle(k)
		handles = append(handles, h)
		resolvers[k] = relation.NewResolver[domain.Resource](h, logger.With("relation", string(k)))
	}

	m := Model{
		reg:         reg,
		handles:     handles,
		resolvers:   resolvers,
		observer:    NewChannelObserver(handles...),
		sess:        opts.Session,
		tr:          tr,
		jumpSvc:     jumpSvc,
		relatedRows: opts.RelatedRowsPerPage,
		logger:      logger,
		stack:       []route{{screen: ScreenHome}},
		preloading:  make(map[domain.Kind]bool),
		jump:        components.NewJump(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		help:        help.New(),
	}
	m.loadHistory()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForChangeCmd(m.observer.C()),
		m.spinner.Tick,
	)
}

// Close releases store subscriptions
func (m Model) Close() {
	m.observer.Close()
}

// Screen returns the page on top of the navigation stack
func (m Model) Screen() Screen {
	return m.top().screen
}

// Translator returns the active locale's translator
func (m Model) Translator() *i18n.Translator {
	return m.tr
}

func (m Model) top() *route {
	return &m.stack[len(m.stack)-1]
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.jump.SetSize(msg.Width, msg.Height)
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StoreChangedMsg:
		cmd := m.refresh(msg.Kind)
		return m, tea.Batch(cmd, WaitForChangeCmd(m.observer.C()))

	case FetchDoneMsg:
		return m, m.refresh(msg.Kind)

	case PreloadedMsg:
		m.preloading[msg.Kind] = false
		m.logger.Debug("related catalog ready", "kind", msg.Kind, "count", msg.Count)
		if r := m.top(); r.screen == ScreenList && r.kind == msg.Kind {
			return m, m.reloadList()
		}
		return m, m.refresh(msg.Kind)

	case VisitRecordedMsg:
		m.loadHistory()
		return m, nil

	case LocaleSavedMsg:
		m.logger.Info("locale saved", "locale", msg.Tag)
		return m, nil

	case ErrMsg:
		m.statusMsg = msg.Error()
		m.logger.Error("tui error", "error", msg.Err, "context", msg.Context)
		return m, nil
	}

	if m.jump.IsVisible() {
		var cmd tea.Cmd
		m.jump, cmd, _ = m.jump.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.jump.IsVisible() {
		return m.handleJumpKey(msg)
	}

	r := m.top()
	if r.list != nil && r.list.searching {
		return m.handleSearchKey(msg)
	}
	if r.detail != nil && r.detail.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, Keys.Jump):
		return m.openJump()
	case key.Matches(msg, Keys.Locale):
		return m.cycleLocale()
	case key.Matches(msg, Keys.Back):
		return m.back()
	}

	switch r.screen {
	case ScreenHome:
		return m.handleHomeKey(msg)
	case ScreenList:
		return m.handleListKey(msg)
	case ScreenDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(domain.Kinds) + len(m.history)
	switch {
	case key.Matches(msg, Keys.Up):
		if m.homeCursor > 0 {
			m.homeCursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.homeCursor < n-1 {
			m.homeCursor++
		}
	case key.Matches(msg, Keys.Enter):
		if m.homeCursor < len(domain.Kinds) {
			return m.openList(domain.Kinds[m.homeCursor])
		}
		v := m.history[m.homeCursor-len(domain.Kinds)]
		return m.openDetail(v.Ref())
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.top()
	h := m.reg.Handle(r.kind)
	v := h.View()

	switch {
	case key.Matches(msg, Keys.Search):
		return m, r.list.startSearch(v.SearchQuery)

	case key.Matches(msg, Keys.Next):
		if v.IsLoading || v.Pagination.Page >= v.Pagination.PageCount() {
			return m, nil
		}
		return m, PageCmd(h, pageRequest(v, v.Pagination.Page+1))

	case key.Matches(msg, Keys.Prev):
		if v.IsLoading || v.Pagination.Page <= 1 {
			return m, nil
		}
		return m, PageCmd(h, pageRequest(v, v.Pagination.Page-1))

	case key.Matches(msg, Keys.Retry):
		h.ClearError()
		return m, FetchListCmd(h, v.Pagination.Page, v.SearchQuery)

	case key.Matches(msg, Keys.Enter):
		it, ok := r.list.selected()
		if !ok {
			return m, nil
		}
		ref, ok := domain.RefOf(it)
		if !ok {
			return m, nil
		}
		return m.openDetail(ref)
	}

	var cmd tea.Cmd
	r.list.table, cmd = r.list.table.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.top()
	switch {
	case key.Matches(msg, InputKeys.Accept):
		r.list.stopSearch()
		return m, FetchListCmd(m.reg.Handle(r.kind), 1, r.list.search.Value())
	case key.Matches(msg, InputKeys.Cancel):
		r.list.stopSearch()
		return m, nil
	}

	var cmd tea.Cmd
	r.list.search, cmd = r.list.search.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.top()
	d := r.detail
	h := m.reg.Handle(d.ref.Kind)
	item := m.currentItem()

	switch {
	case key.Matches(msg, Keys.Retry):
		h.ClearError()
		return m, FetchItemCmd(h, d.ref.ID)
	}
	if item == nil {
		return m, nil
	}
	tabs := len(item.Relations())

	switch {
	case key.Matches(msg, Keys.NextTab):
		d.switchTab(1, tabs)
		d.sync(m.tr, item, m.resolvers)
		return m, nil

	case key.Matches(msg, Keys.PrevTab):
		d.switchTab(-1, tabs)
		d.sync(m.tr, item, m.resolvers)
		return m, nil

	case key.Matches(msg, Keys.Next):
		if d.turnPage(1) {
			d.sync(m.tr, item, m.resolvers)
		}
		return m, nil

	case key.Matches(msg, Keys.Prev):
		if d.turnPage(-1) {
			d.sync(m.tr, item, m.resolvers)
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if tabs == 0 {
			return m, nil
		}
		return m, d.startFilter()

	case key.Matches(msg, Keys.Follow):
		for _, l := range item.Links() {
			if ref, ok := domain.ParseRef(l.URL); ok {
				return m.openDetail(ref)
			}
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		it, ok := d.selected()
		if !ok {
			return m, nil
		}
		ref, ok := domain.RefOf(it)
		if !ok {
			return m, nil
		}
		return m.openDetail(ref)
	}

	var cmd tea.Cmd
	d.table, cmd = d.table.Update(msg)
	return m, cmd
}

// handleFilterKey filters the related table as the user types
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.top().detail
	item := m.currentItem()

	switch {
	case key.Matches(msg, InputKeys.Accept):
		d.applyFilter()
		return m, nil
	case key.Matches(msg, InputKeys.Cancel):
		d.filter.SetValue("")
		d.applyFilter()
		if item != nil {
			d.sync(m.tr, item, m.resolvers)
		}
		return m, nil
	}

	var cmd tea.Cmd
	d.filter, cmd = d.filter.Update(msg)
	q := d.query()
	q.Filter = d.filter.Value()
	q.Page = 1
	d.setQuery(q)
	if item != nil {
		d.sync(m.tr, item, m.resolvers)
	}
	return m, cmd
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		cmd    tea.Cmd
		chosen bool
	)
	m.jump, cmd, chosen = m.jump.Update(msg)
	if chosen {
		res, ok := m.jump.Selected()
		m.jump.Hide()
		if ok {
			return m.openDetail(res.Ref)
		}
		return m, nil
	}
	if m.jump.QueryChanged() {
		m.jump.SetResults(m.jumpSvc.Find(m.jump.Query()))
	}
	return m, cmd
}

func (m Model) openJump() (tea.Model, tea.Cmd) {
	sources := make([]search.Source, len(m.handles))
	for i, h := range m.handles {
		sources[i] = h
	}
	n := m.jumpSvc.Rebuild(sources...)
	m.logger.Debug("jump index rebuilt", "entries", n)
	cmd := m.jump.Show(m.tr.T("Jump to"), m.tr.T("Search")+"...")
	return m, cmd
}

func (m Model) cycleLocale() (tea.Model, tea.Cmd) {
	m.tr = m.tr.Next()
	for _, r := range m.stack {
		if r.list != nil {
			r.list.relabel(m.tr)
		}
	}
	m.syncTop()
	if m.sess == nil {
		return m, nil
	}
	return m, SaveLocaleCmd(m.sess, m.tr.Tag().String())
}

// openList pushes the list of kind, reusing its first page from cache
func (m Model) openList(kind domain.Kind) (tea.Model, tea.Cmd) {
	l := newListView(m.tr, kind, m.contentWidth(), m.contentHeight())
	h := m.reg.Handle(kind)
	m.stack = append(m.stack, route{screen: ScreenList, kind: kind, list: l})
	l.sync(h.View())
	return m, FetchListCmd(h, 1, "")
}

// openDetail pushes the detail page of ref and fetches it
func (m Model) openDetail(ref domain.Ref) (tea.Model, tea.Cmd) {
	h := m.reg.Handle(ref.Kind)
	if h == nil {
		return m, nil
	}
	d := newDetailView(ref, m.relatedRows, m.contentWidth())
	m.stack = append(m.stack, route{screen: ScreenDetail, kind: ref.Kind, detail: d})
	return m, FetchItemCmd(h, ref.ID)
}

// back pops the stack. A detail or list page underneath reloads what it
// showed, which the store serves from cache.
func (m Model) back() (tea.Model, tea.Cmd) {
	if len(m.stack) <= 1 {
		return m, nil
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.statusMsg = ""

	r := m.top()
	switch r.screen {
	case ScreenDetail:
		return m, FetchItemCmd(m.reg.Handle(r.kind), r.detail.ref.ID)
	case ScreenList:
		r.list.sync(m.reg.Handle(r.kind).View())
		return m, m.reloadList()
	case ScreenHome:
		m.loadHistory()
	}
	return m, nil
}

// reloadList refetches the top list's page and search. A sibling preload
// replaces Items with the whole catalog, so the page has to be reapplied.
func (m Model) reloadList() tea.Cmd {
	r := m.top()
	h := m.reg.Handle(r.kind)
	v := h.View()
	return FetchListCmd(h, v.Pagination.Page, v.SearchQuery)
}

// currentItem returns the store's CurrentItem when it is the one the top
// detail page asked for
func (m Model) currentItem() domain.Resource {
	r := m.top()
	if r.screen != ScreenDetail {
		return nil
	}
	item := m.reg.Handle(r.kind).View().CurrentItem
	if item == nil {
		return nil
	}
	ref, ok := domain.RefOf(item)
	if !ok || ref != r.detail.ref {
		return nil
	}
	return item
}

// refresh brings the top page up to date after kind changed
func (m *Model) refresh(kind domain.Kind) tea.Cmd {
	r := m.top()
	switch r.screen {
	case ScreenList:
		if r.kind == kind {
			r.list.sync(m.reg.Handle(kind).View())
		}
		return nil
	case ScreenDetail:
		return m.refreshDetail()
	}
	return nil
}

// refreshDetail resolves the related table and, once per page, starts the
// sibling preloads and records the visit
func (m *Model) refreshDetail() tea.Cmd {
	d := m.top().detail
	item := m.currentItem()
	if item == nil {
		return nil
	}
	d.sync(m.tr, item, m.resolvers)

	var cmds []tea.Cmd
	if !d.preloaded {
		d.preloaded = true
		for _, rel := range item.Relations() {
			cmds = append(cmds, m.preload(rel.Target))
		}
		for _, l := range item.Links() {
			if ref, ok := domain.ParseRef(l.URL); ok {
				cmds = append(cmds, m.preload(ref.Kind))
			}
		}
	}
	if !d.recorded && m.sess != nil {
		d.recorded = true
		cmds = append(cmds, RecordVisitCmd(m.sess, d.ref, item.DisplayName()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) preload(kind domain.Kind) tea.Cmd {
	if m.preloading[kind] || m.reg.Handle(kind).FullyLoaded() {
		return nil
	}
	m.preloading[kind] = true
	return PreloadCmd(kind, m.resolvers[kind])
}

func (m *Model) syncTop() {
	r := m.top()
	switch r.screen {
	case ScreenList:
		r.list.sync(m.reg.Handle(r.kind).View())
	case ScreenDetail:
		if item := m.currentItem(); item != nil {
			r.detail.sync(m.tr, item, m.resolvers)
		}
	}
}

func (m *Model) resize() {
	for _, r := range m.stack {
		if r.list != nil {
			r.list.resize(m.tr, m.contentWidth(), m.contentHeight())
		}
		if r.detail != nil {
			r.detail.width = m.contentWidth()
		}
	}
	m.syncTop()
}

func (m *Model) loadHistory() {
	if m.sess == nil {
		return
	}
	m.history = m.sess.History()
}

func (m Model) contentWidth() int {
	return max(m.width-4, 30)
}

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight-4, 3)
}
