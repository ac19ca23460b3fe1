package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/labhacker007/joti-cli/internal/api"
	"github.com/labhacker007/joti-cli/internal/ui/components"
)

// --- Messages ---

type feedsLoadedMsg struct{ items []api.Feed }
type feedCreatedMsg struct{}
type feedRemovedMsg struct{}
type feedEnabledSetMsg struct {
	id      string
	enabled bool
}

type feedsView int

const (
	feedsViewList feedsView = iota
	feedsViewAdd
)

const (
	feedFieldName = iota
	feedFieldURL
	feedFieldInterval
	feedFieldCount
)

type formField struct {
	label string
	value string
}

// --- Feeds Model ---

type FeedsModel struct {
	client  *api.Client
	items   []api.Feed
	list    *components.List
	loading bool
	view    feedsView

	confirmRemove bool
	removeTarget  *api.Feed
	busyRows      map[string]bool

	addFields []formField
	addFocus  int
	addSaving bool
	addErr    string

	width  int
	height int
}

func NewFeedsModel(client *api.Client) FeedsModel {
	return FeedsModel{
		client:   client,
		list:     components.NewList(15),
		busyRows: map[string]bool{},
		addFields: []formField{
			{label: "Name"},
			{label: "URL"},
			{label: "Interval (minutes)"},
		},
	}
}

func (m FeedsModel) Init() tea.Cmd {
	m.loading = true
	m.view = feedsViewList
	m.confirmRemove = false
	m.resetAddForm()
	return m.loadFeeds
}

func (m FeedsModel) Update(msg tea.Msg) (FeedsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case feedsLoadedMsg:
		m.loading = false
		m.items = msg.items
		m.rebuildList()
		return m, nil
	case feedCreatedMsg:
		m.addSaving = false
		m.view = feedsViewList
		m.resetAddForm()
		m.loading = true
		return m, m.loadFeeds
	case feedRemovedMsg:
		m.loading = true
		return m, m.loadFeeds
	case feedEnabledSetMsg:
		delete(m.busyRows, msg.id)
		for i := range m.items {
			if m.items[i].ID == msg.id {
				m.items[i].Enabled = msg.enabled
			}
		}
		m.rebuildList()
		return m, nil
	case errMsg:
		m.loading = false
		m.addSaving = false
		m.busyRows = map[string]bool{}
		return m, nil

	case tea.KeyMsg:
		if m.confirmRemove {
			return m.handleConfirmRemoveKeys(msg)
		}
		if m.view == feedsViewAdd {
			return m.handleAddKeys(msg)
		}
		return m.handleListKeys(msg)
	}
	return m, nil
}

func (m FeedsModel) View() string {
	if m.confirmRemove && m.removeTarget != nil {
		body := fmt.Sprintf("Unsubscribe from '%s'? Fetched articles are kept.", components.SanitizeOneLine(m.removeTarget.Name))
		return components.Indent(components.ConfirmDialog("Remove Feed", body), 1)
	}
	if m.view == feedsViewAdd {
		return components.Indent(m.renderAdd(), 1)
	}
	return components.Indent(m.renderList(), 1)
}

// --- List ---

func (m FeedsModel) renderList() string {
	if m.loading {
		return MutedStyle.Render("Loading feeds...")
	}
	if len(m.items) == 0 {
		content := MutedStyle.Render("No feed subscriptions. Press n to add one.")
		return components.TitledBox("Feeds", content, m.width)
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
	countLine := MutedStyle.Render(fmt.Sprintf("%d subscriptions", len(m.items)))
	return components.TitledBox("Feeds", countLine+"\n\n"+rows.String(), m.width)
}

func (m FeedsModel) handleListKeys(msg tea.KeyMsg) (FeedsModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isKey(msg, "n"):
		m.view = feedsViewAdd
		m.resetAddForm()
	case isEnter(msg), isSpace(msg), isKey(msg, "t"):
		return m.toggleSelected()
	case isKey(msg, "d"):
		if idx := m.list.Selected(); idx < len(m.items) {
			feed := m.items[idx]
			m.confirmRemove = true
			m.removeTarget = &feed
		}
	case isKey(msg, "r"):
		m.loading = true
		return m, m.loadFeeds
	}
	return m, nil
}

func (m FeedsModel) toggleSelected() (FeedsModel, tea.Cmd) {
	idx := m.list.Selected()
	if idx >= len(m.items) {
		return m, nil
	}
	feed := m.items[idx]
	if m.busyRows[feed.ID] {
		return m, nil
	}
	m.busyRows[feed.ID] = true
	m.rebuildList()
	next := !feed.Enabled
	return m, func() tea.Msg {
		if err := m.client.SetFeedEnabled(feed.ID, next); err != nil {
			return errMsg{err}
		}
		return feedEnabledSetMsg{id: feed.ID, enabled: next}
	}
}

func (m FeedsModel) handleConfirmRemoveKeys(msg tea.KeyMsg) (FeedsModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		target := m.removeTarget
		m.confirmRemove = false
		m.removeTarget = nil
		if target == nil {
			return m, nil
		}
		id := target.ID
		return m, func() tea.Msg {
			if err := m.client.DeleteFeed(id); err != nil {
				return errMsg{err}
			}
			return feedRemovedMsg{}
		}
	case isKey(msg, "n"), isBack(msg):
		m.confirmRemove = false
		m.removeTarget = nil
	}
	return m, nil
}

// --- Add ---

func (m FeedsModel) handleAddKeys(msg tea.KeyMsg) (FeedsModel, tea.Cmd) {
	if m.addSaving {
		return m, nil
	}
	switch {
	case isDown(msg):
		m.addFocus = (m.addFocus + 1) % feedFieldCount
	case isUp(msg):
		m.addFocus = (m.addFocus - 1 + feedFieldCount) % feedFieldCount
	case isKey(msg, "ctrl+s"):
		return m.saveAdd()
	case isBack(msg):
		m.view = feedsViewList
		m.resetAddForm()
	case isKey(msg, "backspace"):
		f := &m.addFields[m.addFocus]
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}
	default:
		ch := msg.String()
		if len(ch) == 1 || ch == " " {
			m.addFields[m.addFocus].value += ch
		}
	}
	return m, nil
}

func (m FeedsModel) renderAdd() string {
	if m.addSaving {
		return MutedStyle.Render("Saving...")
	}

	var b strings.Builder
	for i, f := range m.addFields {
		if i == m.addFocus {
			b.WriteString(SelectedStyle.Render("> " + f.label + ":"))
			b.WriteString("\n")
			b.WriteString(NormalStyle.Render("  " + f.value))
			b.WriteString(AccentStyle.Render("█"))
		} else {
			b.WriteString(MutedStyle.Render("  " + f.label + ":"))
			b.WriteString("\n")
			val := f.value
			if val == "" {
				val = "-"
			}
			b.WriteString(NormalStyle.Render("  " + val))
		}
		if i < feedFieldCount-1 {
			b.WriteString("\n\n")
		}
	}

	if m.addErr != "" {
		b.WriteString("\n\n")
		b.WriteString(components.ErrorBox("Error", m.addErr, m.width))
	}
	return components.TitledBox("Add Feed", b.String(), m.width)
}

func (m FeedsModel) saveAdd() (FeedsModel, tea.Cmd) {
	name := strings.TrimSpace(m.addFields[feedFieldName].value)
	url := strings.TrimSpace(m.addFields[feedFieldURL].value)
	if name == "" || url == "" {
		m.addErr = "Name and URL are required"
		return m, nil
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		m.addErr = "URL must start with http:// or https://"
		return m, nil
	}
	interval := 0
	if raw := strings.TrimSpace(m.addFields[feedFieldInterval].value); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			m.addErr = "Interval must be a positive number of minutes"
			return m, nil
		}
		interval = parsed
	}

	input := api.CreateFeedInput{Name: name, URL: url, IntervalMinutes: interval}
	m.addSaving = true
	m.addErr = ""
	return m, func() tea.Msg {
		if _, err := m.client.AddFeed(input); err != nil {
			return errMsg{err}
		}
		return feedCreatedMsg{}
	}
}

func (m *FeedsModel) resetAddForm() {
	m.addFocus = 0
	m.addSaving = false
	m.addErr = ""
	for i := range m.addFields {
		m.addFields[i].value = ""
	}
}

// --- Helpers ---

func (m FeedsModel) loadFeeds() tea.Msg {
	items, err := m.client.ListFeeds()
	if err != nil {
		return errMsg{err}
	}
	return feedsLoadedMsg{items}
}

func (m *FeedsModel) rebuildList() {
	labels := make([]string, len(m.items))
	for i, feed := range m.items {
		labels[i] = m.formatFeedLine(feed)
	}
	m.list.SetItems(labels)
}

func (m FeedsModel) formatFeedLine(feed api.Feed) string {
	line := NormalStyle.Render(components.SanitizeOneLine(feed.Name)) + " " + components.TogglePill(feed.Enabled)
	details := fmt.Sprintf(" · %d articles", feed.ArticleCount)
	if feed.IntervalMinutes > 0 {
		details += fmt.Sprintf(" · every %dm", feed.IntervalMinutes)
	}
	line += MutedStyle.Render(details)
	if feed.LastError != "" {
		line += ErrorStyle.Render(" · fetch failing")
	}
	if m.busyRows[feed.ID] {
		line += MutedStyle.Render(" · saving...")
	}
	return line
}
