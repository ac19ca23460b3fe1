package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/labhacker007/joti-cli/internal/api"
	"github.com/labhacker007/joti-cli/internal/ui/components"
	"github.com/labhacker007/joti-cli/internal/watchlist"
)

// --- Messages ---

type keywordsLoadedMsg struct{ items []api.Keyword }
type personalKeywordsLoadedMsg struct{ items []api.PersonalKeyword }
type keywordAddedMsg struct{}
type keywordRemovedMsg struct{}
type keywordActiveSetMsg struct {
	scope  watchScope
	id     string
	active bool
}
type keywordCategorySetMsg struct {
	id       string
	category string
}
type matchesRefreshedMsg struct{ result api.RefreshMatchesResult }

type watchScope int

const (
	watchScopeGlobal watchScope = iota
	watchScopePersonal
)

type watchRowKind int

const (
	rowGroupHeader watchRowKind = iota
	rowKeyword
	rowPersonalKeyword
)

// watchRow maps one rendered list line back to the record behind it.
type watchRow struct {
	kind     watchRowKind
	category string
	keyword  api.Keyword
	personal api.PersonalKeyword
}

// categoryOptions is the picker order: clear first, then the taxonomy
// without the synthetic Ungrouped entry.
var categoryOptions = buildCategoryOptions()

func buildCategoryOptions() []string {
	options := make([]string, 0, len(watchlist.Taxonomy))
	options = append(options, "")
	for _, name := range watchlist.Taxonomy {
		if name == watchlist.Ungrouped {
			continue
		}
		options = append(options, name)
	}
	return options
}

// --- Watchlist Model ---

type WatchlistModel struct {
	client    *api.Client
	scope     watchScope
	modeFocus bool

	global   []api.Keyword
	personal []api.PersonalKeyword
	loading  bool

	filter    string
	collapsed watchlist.CollapseSet

	rows []watchRow
	list *components.List

	adding      bool
	addBuf      string
	addPicking  bool
	addCatIdx   int
	busyAdd     bool
	busyRefresh bool
	busyRows    map[string]bool

	confirmRemove bool
	removeTarget  *watchRow

	pickingCategory bool
	catIdx          int
	catTarget       *api.Keyword

	width  int
	height int
}

func NewWatchlistModel(client *api.Client) WatchlistModel {
	return WatchlistModel{
		client:    client,
		list:      components.NewList(15),
		collapsed: watchlist.NewCollapseSet(),
		busyRows:  map[string]bool{},
	}
}

func (m WatchlistModel) Init() tea.Cmd {
	m.loading = true
	m.modeFocus = false
	m.adding = false
	m.addPicking = false
	m.confirmRemove = false
	m.pickingCategory = false
	m.busyAdd = false
	m.busyRefresh = false
	return m.loadScope()
}

func (m WatchlistModel) Update(msg tea.Msg) (WatchlistModel, tea.Cmd) {
	switch msg := msg.(type) {
	case keywordsLoadedMsg:
		m.loading = false
		m.global = msg.items
		m.rebuild()
		return m, nil
	case personalKeywordsLoadedMsg:
		m.loading = false
		m.personal = msg.items
		m.rebuild()
		return m, nil

	case keywordAddedMsg:
		m.busyAdd = false
		m.adding = false
		m.addPicking = false
		m.addBuf = ""
		m.loading = true
		return m, m.loadScope()
	case keywordRemovedMsg:
		m.loading = true
		return m, m.loadScope()

	case keywordActiveSetMsg:
		delete(m.busyRows, msg.id)
		m.patchActive(msg)
		m.rebuild()
		return m, nil
	case keywordCategorySetMsg:
		delete(m.busyRows, msg.id)
		for i := range m.global {
			if m.global[i].ID == msg.id {
				m.global[i].Category = msg.category
			}
		}
		m.rebuild()
		return m, nil
	case matchesRefreshedMsg:
		m.busyRefresh = false
		return m, nil

	case errMsg:
		m.loading = false
		m.busyAdd = false
		m.busyRefresh = false
		m.busyRows = map[string]bool{}
		return m, nil

	case tea.KeyMsg:
		if m.confirmRemove {
			return m.handleConfirmRemoveKeys(msg)
		}
		if m.pickingCategory {
			return m.handleCategoryPickerKeys(msg)
		}
		if m.adding {
			return m.handleAddKeys(msg)
		}
		if m.modeFocus {
			return m.handleModeKeys(msg)
		}
		return m.handleListKeys(msg)
	}
	return m, nil
}

func (m WatchlistModel) View() string {
	if m.confirmRemove && m.removeTarget != nil {
		name := m.removeTarget.keyword.Keyword
		if m.removeTarget.kind == rowPersonalKeyword {
			name = m.removeTarget.personal.Keyword
		}
		body := fmt.Sprintf("Remove '%s' from the watchlist?", components.SanitizeOneLine(name))
		return components.Indent(components.ConfirmDialog("Remove Keyword", body), 1)
	}
	if m.pickingCategory {
		return components.Indent(m.renderCategoryPicker("Set Category", m.catIdx), 1)
	}
	if m.adding {
		if m.addPicking {
			return components.Indent(m.renderCategoryPicker("Category for '"+components.SanitizeOneLine(m.addBuf)+"'", m.addCatIdx), 1)
		}
		title := "Add Keyword"
		if m.scope == watchScopePersonal {
			title = "Add Personal Keyword"
		}
		return components.Indent(components.InputDialog(title, m.addBuf), 1)
	}

	modeLine := m.renderModeLine()
	body := m.renderList()
	return components.Indent(components.CenterLine(modeLine, m.width)+"\n\n"+body, 1)
}

// --- Mode Line ---

func (m WatchlistModel) renderModeLine() string {
	global := TabInactiveStyle.Render("Global")
	personal := TabInactiveStyle.Render("Personal")
	if m.scope == watchScopeGlobal {
		global = TabActiveStyle.Render("Global")
	} else {
		personal = TabActiveStyle.Render("Personal")
	}
	line := global + " " + personal
	if m.modeFocus {
		return SelectedStyle.Render("› " + line)
	}
	return line
}

func (m WatchlistModel) handleModeKeys(msg tea.KeyMsg) (WatchlistModel, tea.Cmd) {
	switch {
	case isDown(msg), isBack(msg):
		m.modeFocus = false
	case isKey(msg, "left"), isKey(msg, "right"), isSpace(msg), isEnter(msg):
		return m.toggleScope()
	}
	return m, nil
}

func (m WatchlistModel) toggleScope() (WatchlistModel, tea.Cmd) {
	m.modeFocus = false
	if m.scope == watchScopeGlobal {
		m.scope = watchScopePersonal
	} else {
		m.scope = watchScopeGlobal
	}
	m.list.Reset()
	m.loading = true
	return m, m.loadScope()
}

// --- List ---

func (m WatchlistModel) renderList() string {
	if m.loading {
		return MutedStyle.Render("Loading watchlist...")
	}

	title := "Watchlist · Global"
	total := len(m.global)
	if m.scope == watchScopePersonal {
		title = "Watchlist · Personal"
		total = len(m.personal)
	}

	countLine := fmt.Sprintf("%d total", total)
	if shown := m.shownCount(); shown != total {
		countLine = fmt.Sprintf("%s · %d shown", countLine, shown)
	}
	if strings.TrimSpace(m.filter) != "" {
		countLine = fmt.Sprintf("%s · filter: %s", countLine, components.SanitizeOneLine(m.filter))
	}
	if m.busyRefresh {
		countLine = fmt.Sprintf("%s · refreshing matches...", countLine)
	}
	countLine = MutedStyle.Render(countLine)

	if len(m.rows) == 0 {
		empty := "No keywords on the watchlist."
		if strings.TrimSpace(m.filter) != "" {
			empty = "No keywords match the filter."
		}
		return components.TitledBox(title, countLine+"\n\n"+MutedStyle.Render(empty), m.width)
	}

	var rows strings.Builder
	visible := m.list.Visible()
	for i, label := range visible {
		absIdx := m.list.RelToAbs(i)
		if m.list.IsSelected(absIdx) {
			rows.WriteString(SelectedStyle.Render("  > ") + label)
		} else {
			rows.WriteString("    " + label)
		}
		if i < len(visible)-1 {
			rows.WriteString("\n")
		}
	}
	return components.TitledBox(title, countLine+"\n\n"+rows.String(), m.width)
}

func (m WatchlistModel) handleListKeys(msg tea.KeyMsg) (WatchlistModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		if m.list.Selected() == 0 {
			m.modeFocus = true
		} else {
			m.list.Up()
		}
	case isEnter(msg):
		return m.activateSelected()
	case isSpace(msg):
		if m.filter != "" {
			m.filter += " "
			m.rebuild()
			return m, nil
		}
		return m.activateSelected()
	case isKey(msg, "tab"):
		return m.toggleScope()
	case isKey(msg, "n"):
		m.adding = true
		m.addBuf = ""
		m.addPicking = false
		m.addCatIdx = 0
	case isKey(msg, "t"):
		return m.toggleSelectedActive()
	case isKey(msg, "c"):
		return m.openCategoryPicker()
	case isKey(msg, "d"):
		if row := m.selectedRow(); row != nil && row.kind != rowGroupHeader {
			target := *row
			m.confirmRemove = true
			m.removeTarget = &target
		}
	case isKey(msg, "R"):
		return m.refreshMatches()
	case isKey(msg, "backspace", "delete"):
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
			m.rebuild()
		}
	case isKey(msg, "ctrl+u"):
		if m.filter != "" {
			m.filter = ""
			m.rebuild()
		}
	case isBack(msg):
		if m.filter != "" {
			m.filter = ""
			m.rebuild()
		}
	default:
		ch := msg.String()
		if len(ch) == 1 {
			m.filter += ch
			m.rebuild()
		}
	}
	return m, nil
}

// activateSelected collapses a group header or toggles a keyword row.
func (m WatchlistModel) activateSelected() (WatchlistModel, tea.Cmd) {
	row := m.selectedRow()
	if row == nil {
		return m, nil
	}
	if row.kind == rowGroupHeader {
		m.collapsed.Toggle(row.category)
		m.rebuild()
		return m, nil
	}
	return m.toggleSelectedActive()
}

func (m WatchlistModel) toggleSelectedActive() (WatchlistModel, tea.Cmd) {
	row := m.selectedRow()
	if row == nil || row.kind == rowGroupHeader {
		return m, nil
	}

	scope := m.scope
	id := row.keyword.ID
	next := !row.keyword.IsActive
	if row.kind == rowPersonalKeyword {
		id = row.personal.ID
		next = !row.personal.IsActive
	}
	if m.busyRows[id] {
		return m, nil
	}
	m.busyRows[id] = true
	m.rebuild()

	return m, func() tea.Msg {
		var err error
		if scope == watchScopePersonal {
			err = m.client.SetPersonalKeywordActive(id, next)
		} else {
			err = m.client.SetKeywordActive(id, next)
		}
		if err != nil {
			return errMsg{err}
		}
		return keywordActiveSetMsg{scope: scope, id: id, active: next}
	}
}

func (m WatchlistModel) refreshMatches() (WatchlistModel, tea.Cmd) {
	if m.scope != watchScopeGlobal || m.busyRefresh {
		return m, nil
	}
	m.busyRefresh = true
	return m, func() tea.Msg {
		result, err := m.client.RefreshMatches()
		if err != nil {
			return errMsg{err}
		}
		return matchesRefreshedMsg{result: *result}
	}
}

// --- Add ---

func (m WatchlistModel) handleAddKeys(msg tea.KeyMsg) (WatchlistModel, tea.Cmd) {
	if m.busyAdd {
		return m, nil
	}
	if m.addPicking {
		switch {
		case isBack(msg):
			m.addPicking = false
		case isUp(msg):
			if m.addCatIdx > 0 {
				m.addCatIdx--
			}
		case isDown(msg):
			if m.addCatIdx < len(categoryOptions)-1 {
				m.addCatIdx++
			}
		case isEnter(msg):
			return m.saveAdd(categoryOptions[m.addCatIdx])
		}
		return m, nil
	}

	switch {
	case isBack(msg):
		m.adding = false
		m.addBuf = ""
	case isEnter(msg):
		if strings.TrimSpace(m.addBuf) == "" {
			return m, nil
		}
		if m.scope == watchScopePersonal {
			return m.saveAdd("")
		}
		m.addPicking = true
		m.addCatIdx = 0
	case isKey(msg, "backspace"):
		if len(m.addBuf) > 0 {
			m.addBuf = m.addBuf[:len(m.addBuf)-1]
		}
	default:
		ch := msg.String()
		if len(ch) == 1 || ch == " " {
			m.addBuf += ch
		}
	}
	return m, nil
}

func (m WatchlistModel) saveAdd(category string) (WatchlistModel, tea.Cmd) {
	keyword := strings.TrimSpace(m.addBuf)
	if keyword == "" {
		return m, nil
	}
	scope := m.scope
	m.busyAdd = true
	return m, func() tea.Msg {
		var err error
		if scope == watchScopePersonal {
			_, err = m.client.AddPersonalKeyword(keyword)
		} else {
			_, err = m.client.AddKeyword(api.AddKeywordInput{Keyword: keyword, Category: category})
		}
		if err != nil {
			return errMsg{err}
		}
		return keywordAddedMsg{}
	}
}

// --- Remove ---

func (m WatchlistModel) handleConfirmRemoveKeys(msg tea.KeyMsg) (WatchlistModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		target := m.removeTarget
		m.confirmRemove = false
		m.removeTarget = nil
		if target == nil {
			return m, nil
		}
		scope := m.scope
		id := target.keyword.ID
		if target.kind == rowPersonalKeyword {
			id = target.personal.ID
		}
		return m, func() tea.Msg {
			var err error
			if scope == watchScopePersonal {
				err = m.client.DeletePersonalKeyword(id)
			} else {
				err = m.client.DeleteKeyword(id)
			}
			if err != nil {
				return errMsg{err}
			}
			return keywordRemovedMsg{}
		}
	case isKey(msg, "n"), isBack(msg):
		m.confirmRemove = false
		m.removeTarget = nil
	}
	return m, nil
}

// --- Category Picker ---

func (m WatchlistModel) openCategoryPicker() (WatchlistModel, tea.Cmd) {
	if m.scope != watchScopeGlobal {
		return m, nil
	}
	row := m.selectedRow()
	if row == nil || row.kind != rowKeyword {
		return m, nil
	}
	if m.busyRows[row.keyword.ID] {
		return m, nil
	}
	keyword := row.keyword
	m.pickingCategory = true
	m.catTarget = &keyword
	m.catIdx = 0
	for i, name := range categoryOptions {
		if name == keyword.Category {
			m.catIdx = i
			break
		}
	}
	return m, nil
}

func (m WatchlistModel) handleCategoryPickerKeys(msg tea.KeyMsg) (WatchlistModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.pickingCategory = false
		m.catTarget = nil
	case isUp(msg):
		if m.catIdx > 0 {
			m.catIdx--
		}
	case isDown(msg):
		if m.catIdx < len(categoryOptions)-1 {
			m.catIdx++
		}
	case isEnter(msg):
		if m.catTarget == nil {
			m.pickingCategory = false
			return m, nil
		}
		id := m.catTarget.ID
		category := categoryOptions[m.catIdx]
		m.pickingCategory = false
		m.catTarget = nil
		m.busyRows[id] = true
		m.rebuild()
		return m, func() tea.Msg {
			if _, err := m.client.UpdateKeywordCategory(id, category); err != nil {
				return errMsg{err}
			}
			return keywordCategorySetMsg{id: id, category: category}
		}
	}
	return m, nil
}

func (m WatchlistModel) renderCategoryPicker(title string, selected int) string {
	var b strings.Builder
	for i, name := range categoryOptions {
		label := name
		if label == "" {
			label = "(none)"
		}
		if i == selected {
			b.WriteString(SelectedStyle.Render("  > " + label))
		} else {
			b.WriteString(NormalStyle.Render("    " + label))
		}
		if i < len(categoryOptions)-1 {
			b.WriteString("\n")
		}
	}
	return components.TitledBox(title, b.String(), m.width)
}

// --- Helpers ---

func (m WatchlistModel) loadScope() tea.Cmd {
	scope := m.scope
	return func() tea.Msg {
		if scope == watchScopePersonal {
			items, err := m.client.ListPersonalKeywords()
			if err != nil {
				return errMsg{err}
			}
			return personalKeywordsLoadedMsg{items}
		}
		items, err := m.client.ListKeywords()
		if err != nil {
			return errMsg{err}
		}
		return keywordsLoadedMsg{items}
	}
}

// patchActive updates the toggled record in place; toggles never refetch.
func (m *WatchlistModel) patchActive(msg keywordActiveSetMsg) {
	if msg.scope == watchScopePersonal {
		for i := range m.personal {
			if m.personal[i].ID == msg.id {
				m.personal[i].IsActive = msg.active
			}
		}
		return
	}
	for i := range m.global {
		if m.global[i].ID == msg.id {
			m.global[i].IsActive = msg.active
		}
	}
}

// rebuild recomputes the grouped rows and list labels from raw records.
// Collapse state is keyed by category name so it survives filter changes.
func (m *WatchlistModel) rebuild() {
	m.rows = m.rows[:0]
	var labels []string

	if m.scope == watchScopePersonal {
		for _, kw := range watchlist.DerivePersonal(toWatchPersonal(m.personal), m.filter) {
			m.rows = append(m.rows, watchRow{
				kind: rowPersonalKeyword,
				personal: api.PersonalKeyword{
					ID:       kw.ID,
					Keyword:  kw.Keyword,
					IsActive: kw.Active,
				},
			})
			labels = append(labels, m.formatKeywordLine(kw.Keyword, kw.Active, kw.ID))
		}
		m.list.SetItems(labels)
		return
	}

	byID := make(map[string]api.Keyword, len(m.global))
	for _, kw := range m.global {
		byID[kw.ID] = kw
	}

	for _, group := range watchlist.Derive(toWatchKeywords(m.global), m.filter) {
		m.rows = append(m.rows, watchRow{kind: rowGroupHeader, category: group.Category})
		labels = append(labels, m.formatGroupHeader(group))
		if m.collapsed.Collapsed(group.Category) {
			continue
		}
		for _, kw := range group.Keywords {
			m.rows = append(m.rows, watchRow{kind: rowKeyword, category: group.Category, keyword: byID[kw.ID]})
			labels = append(labels, "  "+m.formatKeywordLine(kw.Keyword, kw.Active, kw.ID))
		}
	}
	m.list.SetItems(labels)
}

func (m WatchlistModel) formatGroupHeader(group watchlist.Group) string {
	marker := "▾"
	if m.collapsed.Collapsed(group.Category) {
		marker = "▸"
	}
	header := GroupHeaderStyle.Render(fmt.Sprintf("%s %s", marker, group.Category))
	return header + CountStyle.Render(fmt.Sprintf(" (%d)", len(group.Keywords)))
}

func (m WatchlistModel) formatKeywordLine(keyword string, active bool, id string) string {
	line := NormalStyle.Render(components.SanitizeOneLine(keyword)) + " " + components.TogglePill(active)
	if m.busyRows[id] {
		line += MutedStyle.Render(" · saving...")
	}
	return line
}

func (m WatchlistModel) shownCount() int {
	if m.scope == watchScopePersonal {
		return len(watchlist.DerivePersonal(toWatchPersonal(m.personal), m.filter))
	}
	count := 0
	for _, group := range watchlist.Derive(toWatchKeywords(m.global), m.filter) {
		count += len(group.Keywords)
	}
	return count
}

func (m WatchlistModel) selectedRow() *watchRow {
	idx := m.list.Selected()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}
	row := m.rows[idx]
	return &row
}

func toWatchKeywords(items []api.Keyword) []watchlist.Keyword {
	out := make([]watchlist.Keyword, len(items))
	for i, kw := range items {
		out[i] = watchlist.Keyword{
			ID:        kw.ID,
			Keyword:   kw.Keyword,
			Category:  kw.Category,
			Active:    kw.IsActive,
			CreatedAt: kw.CreatedAt,
		}
	}
	return out
}

func toWatchPersonal(items []api.PersonalKeyword) []watchlist.PersonalKeyword {
	out := make([]watchlist.PersonalKeyword, len(items))
	for i, kw := range items {
		out[i] = watchlist.PersonalKeyword{
			ID:      kw.ID,
			Keyword: kw.Keyword,
			Active:  kw.IsActive,
		}
	}
	return out
}
