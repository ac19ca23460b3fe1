package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/labhacker007/joti-cli/internal/api"
	"github.com/labhacker007/joti-cli/internal/config"
	"github.com/labhacker007/joti-cli/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabWatchlist = 0
	tabFeeds     = 1
	tabMonitor   = 2
	tabSettings  = 3
	tabCount     = 4
)

var tabNames = []string{"Watchlist", "Feeds", "Monitor", "Settings"}

// --- Messages ---

type errMsg struct{ err error }
type clearToastMsg struct{}
type startupCheckedMsg struct {
	apiErr  string
	authErr string
}

type startupSummary struct {
	API  string
	Auth string
	Done bool
}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	client *api.Client
	config *config.Config
	tab    int
	tabNav bool
	width  int
	height int

	err          string
	authRecovery bool
	helpOpen     bool
	quitConfirm  bool

	startupChecking bool
	startup         startupSummary
	toast           *appToast

	watch    WatchlistModel
	feeds    FeedsModel
	monitor  MonitorModel
	settings SettingsModel
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config) App {
	return App{
		client:          client,
		config:          cfg,
		tab:             tabWatchlist,
		tabNav:          true,
		startupChecking: client != nil,
		startup: startupSummary{
			API:  "checking",
			Auth: "checking",
		},
		watch:    NewWatchlistModel(client),
		feeds:    NewFeedsModel(client),
		monitor:  NewMonitorModel(client),
		settings: NewSettingsModel(client, cfg),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.watch.Init()}
	if a.startupChecking {
		cmds = append(cmds, a.runStartupCheckCmd())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.watch.width = msg.Width
		a.watch.height = msg.Height
		a.feeds.width = msg.Width
		a.feeds.height = msg.Height
		a.monitor.width = msg.Width
		a.monitor.height = msg.Height
		a.settings.width = msg.Width
		a.settings.height = msg.Height
		return a, nil

	case errMsg:
		// Let the active tab clear its busy flags before the banner shows.
		a = a.forwardToActiveTab(msg)
		a.err = msg.err.Error()
		a.authRecovery = isAuthError(a.err)
		return a, nil
	case clearToastMsg:
		a.toast = nil
		return a, nil
	case startupCheckedMsg:
		a.startupChecking = false
		a.startup.Done = true
		a.startup.API = classifyStartupAPI(msg.apiErr)
		if a.startup.API == "ok" {
			a.startup.Auth = classifyStartupAuth(msg.authErr, a.config)
		} else {
			a.startup.Auth = "unknown"
		}
		level, text := startupToastCopy(a.startup)
		return a, a.setToast(level, text)

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.err != "" {
			a.err = ""
			a.authRecovery = false
		}

		// Global keys
		if isKey(msg, "?") {
			a.helpOpen = true
			return a, nil
		}
		if isKey(msg, "ctrl+c") {
			return a, tea.Quit
		}
		if isQuit(msg) && !a.tabCapturesText() {
			if a.hasUnsaved() {
				a.quitConfirm = true
				return a, nil
			}
			return a, tea.Quit
		}

		if !a.tabCapturesText() {
			for i := 0; i < tabCount; i++ {
				if isTab(msg, i+1) {
					return a.switchTab(i)
				}
			}
		}

		// Arrow tab navigation until the user enters content with Down.
		if a.tabNav {
			if isKey(msg, "left") {
				return a.switchTab((a.tab - 1 + tabCount) % tabCount)
			}
			if isKey(msg, "right") {
				return a.switchTab((a.tab + 1) % tabCount)
			}
			if isDown(msg) {
				a.tabNav = false
				return a, nil
			}
			a.tabNav = false
		} else {
			if isUp(msg) && a.canExitToTabNav() {
				a.tabNav = true
				return a, nil
			}
		}
	}

	// Delegate to active tab
	var cmd tea.Cmd
	switch a.tab {
	case tabWatchlist:
		a.watch, cmd = a.watch.Update(msg)
	case tabFeeds:
		a.feeds, cmd = a.feeds.Update(msg)
	case tabMonitor:
		a.monitor, cmd = a.monitor.Update(msg)
	case tabSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	toastCmd := a.toastCmdForMsg(msg)
	if toastCmd != nil && cmd != nil {
		return a, tea.Batch(cmd, toastCmd)
	}
	if toastCmd != nil {
		return a, toastCmd
	}
	return a, cmd
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)
	startupPanel := ""
	if a.startupChecking {
		startupPanel = "\n\n" + centerBlockUniform(a.renderStartupPanel(), a.width)
	}

	var content string
	switch a.tab {
	case tabWatchlist:
		content = a.watch.View()
	case tabFeeds:
		content = a.feeds.View()
	case tabMonitor:
		content = a.monitor.View()
	case tabSettings:
		content = a.settings.View()
	}
	content = centerBlockUniform(content, a.width)

	if a.quitConfirm {
		content = centerBlockUniform(a.renderQuitConfirm(), a.width)
	} else if a.helpOpen {
		content = centerBlockUniform(a.renderHelp(), a.width)
	}

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.err != "" {
		message := a.err
		if a.authRecovery {
			message += "\n\nRun 'joti login' to refresh your session."
		}
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Error", message, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s\n\n\n%s%s", banner, tabs, startupPanel, content, hints, feedback)
}

func (a *App) switchTab(newTab int) (App, tea.Cmd) {
	oldTab := a.tab
	a.tab = newTab
	if oldTab != newTab {
		cmd := a.initTab(newTab)
		return *a, cmd
	}
	return *a, nil
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a *App) initTab(tab int) tea.Cmd {
	switch tab {
	case tabWatchlist:
		return a.watch.Init()
	case tabFeeds:
		return a.feeds.Init()
	case tabMonitor:
		return a.monitor.Init()
	case tabSettings:
		return a.settings.Init()
	}
	return nil
}

// forwardToActiveTab hands a non-key message to the current tab model so it
// can update internal state, dropping any command it returns.
func (a App) forwardToActiveTab(msg tea.Msg) App {
	switch a.tab {
	case tabWatchlist:
		a.watch, _ = a.watch.Update(msg)
	case tabFeeds:
		a.feeds, _ = a.feeds.Update(msg)
	case tabMonitor:
		a.monitor, _ = a.monitor.Update(msg)
	case tabSettings:
		a.settings, _ = a.settings.Update(msg)
	}
	return a
}

// tabCapturesText reports whether the active tab is consuming plain
// characters, so digit and quit keys must pass through to it.
func (a App) tabCapturesText() bool {
	switch a.tab {
	case tabWatchlist:
		if a.watch.adding || a.watch.confirmRemove || a.watch.pickingCategory {
			return true
		}
		return !a.tabNav && !a.watch.modeFocus
	case tabFeeds:
		return a.feeds.view == feedsViewAdd || a.feeds.confirmRemove
	case tabSettings:
		return a.settings.confirmPurge || (!a.tabNav && a.settings.focus == settingsFieldRetention)
	}
	return false
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	if a.helpOpen {
		return []string{
			components.Hint("esc", "Back"),
		}
	}
	return a.statusHintsForTab()
}

func (a App) statusHintsForTab() []string {
	base := []string{
		components.Hint("1-4", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("ctrl+c", "Quit"),
	}

	switch a.tab {
	case tabWatchlist:
		if a.watch.confirmRemove {
			return append(base,
				components.Hint("y", "Confirm"),
				components.Hint("n", "Cancel"),
			)
		}
		if a.watch.adding || a.watch.pickingCategory {
			return append(base,
				components.Hint("enter", "Apply"),
				components.Hint("esc", "Cancel"),
			)
		}
		return append(base,
			components.Hint("↑/↓", "Scroll"),
			components.Hint("tab", "Scope"),
			components.Hint("type", "Filter"),
			components.Hint("enter", "Collapse/Toggle"),
			components.Hint("n", "New"),
			components.Hint("t", "Toggle"),
			components.Hint("c", "Category"),
			components.Hint("d", "Delete"),
			components.Hint("R", "Refresh Matches"),
		)
	case tabFeeds:
		if a.feeds.confirmRemove {
			return append(base,
				components.Hint("y", "Confirm"),
				components.Hint("n", "Cancel"),
			)
		}
		if a.feeds.view == feedsViewAdd {
			return append(base,
				components.Hint("↑/↓", "Fields"),
				components.Hint("ctrl+s", "Save"),
				components.Hint("esc", "Cancel"),
			)
		}
		return append(base,
			components.Hint("↑/↓", "Scroll"),
			components.Hint("enter", "Toggle"),
			components.Hint("n", "New"),
			components.Hint("d", "Delete"),
			components.Hint("r", "Reload"),
		)
	case tabMonitor:
		return append(base,
			components.Hint("r", "Refresh"),
		)
	case tabSettings:
		if a.settings.confirmPurge {
			return append(base,
				components.Hint("y", "Confirm"),
				components.Hint("n", "Cancel"),
			)
		}
		if a.settings.exporting {
			return append(base,
				components.Hint("↑/↓", "Format"),
				components.Hint("enter", "Export"),
				components.Hint("esc", "Cancel"),
			)
		}
		return append(base,
			components.Hint("↑/↓", "Fields"),
			components.Hint("space", "Toggle"),
			components.Hint("ctrl+s", "Save"),
			components.Hint("p", "Purge"),
			components.Hint("e", "Export"),
		)
	}
	return base
}

func (a App) renderHelp() string {
	hints := a.statusHintsForTab()
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "You have unsaved changes. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func (a App) runStartupCheckCmd() tea.Cmd {
	return func() tea.Msg {
		checkClient := a.client.WithTimeout(700 * time.Millisecond)

		msg := startupCheckedMsg{}
		if _, err := checkClient.Health(); err != nil {
			msg.apiErr = err.Error()
			return msg
		}
		if _, err := checkClient.ListKeywords(); err != nil {
			msg.authErr = err.Error()
		}
		return msg
	}
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func (a App) renderStartupPanel() string {
	rows := []components.TableRow{
		{Label: "API", Value: a.startup.API, ValueColor: startupStatusColor(a.startup.API)},
		{Label: "Auth", Value: a.startup.Auth, ValueColor: startupStatusColor(a.startup.Auth)},
	}
	return components.Table("Startup Checks", rows, a.width)
}

func (a *App) toastCmdForMsg(msg tea.Msg) tea.Cmd {
	var level, text string
	switch msg := msg.(type) {
	case keywordAddedMsg:
		level, text = "success", "Keyword added."
	case keywordRemovedMsg:
		level, text = "success", "Keyword removed."
	case keywordCategorySetMsg:
		level, text = "success", "Category updated."
	case matchesRefreshedMsg:
		level = "success"
		text = fmt.Sprintf("Matches refreshed: %d articles updated, %d high priority.",
			msg.result.ArticlesUpdated, msg.result.HighPriorityArticles)
	case feedCreatedMsg:
		level, text = "success", "Feed added."
	case feedRemovedMsg:
		level, text = "success", "Feed removed."
	case settingsSavedMsg:
		level, text = "success", "Settings saved."
	case purgeDoneMsg:
		level = "success"
		text = fmt.Sprintf("Purge complete: %d articles removed.", msg.removed)
	case exportDoneMsg:
		level = "success"
		text = fmt.Sprintf("Exported %d keywords to %s.", msg.count, msg.path)
	}
	if text == "" {
		return nil
	}
	return a.setToast(level, text)
}

func isAuthError(errText string) bool {
	lower := strings.ToLower(errText)
	return strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid token") ||
		strings.Contains(lower, "http 401")
}

func classifyStartupAPI(errText string) string {
	if strings.TrimSpace(errText) == "" {
		return "ok"
	}
	lower := strings.ToLower(errText)
	if strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded") {
		return "timeout"
	}
	return "down"
}

func classifyStartupAuth(errText string, cfg *config.Config) string {
	if cfg == nil || strings.TrimSpace(cfg.Token) == "" {
		return "missing"
	}
	if strings.TrimSpace(errText) == "" {
		return "ok"
	}
	return "invalid"
}

func startupToastCopy(summary startupSummary) (string, string) {
	if summary.API == "ok" && summary.Auth == "ok" {
		return "success", "Startup checks passed: API and auth are healthy."
	}
	if summary.API != "ok" {
		return "error", fmt.Sprintf("Startup checks failed: API is %s.", summary.API)
	}
	return "warning", fmt.Sprintf("Startup checks: auth=%s. Run 'joti login' if your session expired.", summary.Auth)
}

func startupStatusColor(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "ok":
		return string(ColorSuccess)
	case "checking":
		return string(ColorMuted)
	case "missing", "timeout", "unknown":
		return string(ColorWarning)
	default:
		return string(ColorError)
	}
}

func (a App) hasUnsaved() bool {
	if a.watch.adding && strings.TrimSpace(a.watch.addBuf) != "" {
		return true
	}
	if a.feeds.view == feedsViewAdd {
		for _, f := range a.feeds.addFields {
			if strings.TrimSpace(f.value) != "" {
				return true
			}
		}
	}
	if a.settings.settings != nil {
		s := a.settings.settings
		if a.settings.retentionBuf != fmt.Sprintf("%d", s.RetentionDays) ||
			a.settings.autoPurge != s.AutoPurge ||
			a.settings.pin != s.HighPriorityPin {
			return true
		}
	}
	return false
}

func (a App) canExitToTabNav() bool {
	switch a.tab {
	case tabWatchlist:
		if a.watch.adding || a.watch.confirmRemove || a.watch.pickingCategory {
			return false
		}
		return a.watch.list == nil || a.watch.list.Selected() == 0
	case tabFeeds:
		if a.feeds.view != feedsViewList || a.feeds.confirmRemove {
			return false
		}
		return a.feeds.list == nil || a.feeds.list.Selected() == 0
	case tabMonitor:
		return true
	case tabSettings:
		if a.settings.confirmPurge || a.settings.exporting {
			return false
		}
		return a.settings.focus == 0
	}
	return false
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
