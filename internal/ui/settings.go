package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/labhacker007/joti-cli/internal/api"
	"github.com/labhacker007/joti-cli/internal/config"
	"github.com/labhacker007/joti-cli/internal/export"
	"github.com/labhacker007/joti-cli/internal/ui/components"
)

// --- Messages ---

type settingsLoadedMsg struct{ settings api.Settings }
type settingsSavedMsg struct{ settings api.Settings }
type purgeDoneMsg struct{ removed int }
type exportDoneMsg struct {
	path  string
	count int
}

const (
	settingsFieldRetention = iota
	settingsFieldAutoPurge
	settingsFieldPin
	settingsFieldCount
)

var exportFormats = []export.Format{export.FormatCSV, export.FormatJSON}

// --- Settings Model ---

type SettingsModel struct {
	client *api.Client
	config *config.Config

	settings *api.Settings
	loading  bool

	focus        int
	retentionBuf string
	autoPurge    bool
	pin          bool
	saveErr      string
	saving       bool

	confirmPurge bool
	purging      bool

	exporting bool
	exportIdx int
	busyExp   bool

	width  int
	height int
}

func NewSettingsModel(client *api.Client, cfg *config.Config) SettingsModel {
	return SettingsModel{
		client: client,
		config: cfg,
	}
}

func (m SettingsModel) Init() tea.Cmd {
	m.loading = true
	m.focus = 0
	m.saveErr = ""
	m.saving = false
	m.confirmPurge = false
	m.exporting = false
	return m.loadSettings
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		m.loading = false
		settings := msg.settings
		m.settings = &settings
		m.retentionBuf = strconv.Itoa(settings.RetentionDays)
		m.autoPurge = settings.AutoPurge
		m.pin = settings.HighPriorityPin
		return m, nil
	case settingsSavedMsg:
		m.saving = false
		settings := msg.settings
		m.settings = &settings
		m.retentionBuf = strconv.Itoa(settings.RetentionDays)
		m.autoPurge = settings.AutoPurge
		m.pin = settings.HighPriorityPin
		return m, nil
	case purgeDoneMsg:
		m.purging = false
		return m, nil
	case exportDoneMsg:
		m.busyExp = false
		m.exporting = false
		return m, nil
	case errMsg:
		m.loading = false
		m.saving = false
		m.purging = false
		m.busyExp = false
		return m, nil

	case tea.KeyMsg:
		if m.confirmPurge {
			return m.handleConfirmPurgeKeys(msg)
		}
		if m.exporting {
			return m.handleExportKeys(msg)
		}
		return m.handleFormKeys(msg)
	}
	return m, nil
}

func (m SettingsModel) View() string {
	if m.confirmPurge {
		body := "Purge all articles older than the retention window?"
		return components.Indent(components.ConfirmDialog("Purge Articles", body), 1)
	}
	if m.exporting {
		return components.Indent(m.renderExportPicker(), 1)
	}
	if m.loading {
		return components.Indent(MutedStyle.Render("Loading settings..."), 1)
	}
	if m.settings == nil {
		return components.Indent(MutedStyle.Render("Settings unavailable."), 1)
	}

	sections := []string{m.renderAccount(), m.renderForm()}
	footer := MutedStyle.Render("ctrl+s save · p purge · e export keywords")
	return components.Indent(strings.Join(sections, "\n\n")+"\n\n"+footer, 1)
}

// --- Account ---

func (m SettingsModel) renderAccount() string {
	rows := []components.TableRow{}
	if m.config != nil {
		rows = append(rows, components.TableRow{Label: "User", Value: m.config.Username})
		server := m.config.ServerURL
		if server == "" {
			server = api.DefaultBaseURL
		}
		rows = append(rows, components.TableRow{Label: "Server", Value: server})
		rows = append(rows, components.TableRow{Label: "Config", Value: config.Path()})
	}
	if len(rows) == 0 {
		return ""
	}
	return components.Table("Account", rows, m.width)
}

// --- Retention Form ---

func (m SettingsModel) renderForm() string {
	var b strings.Builder

	writeField := func(idx int, label, value string) {
		if idx == m.focus {
			b.WriteString(SelectedStyle.Render("> " + label + ":"))
		} else {
			b.WriteString(MutedStyle.Render("  " + label + ":"))
		}
		b.WriteString("\n")
		b.WriteString("  " + value)
		if idx < settingsFieldCount-1 {
			b.WriteString("\n\n")
		}
	}

	retention := NormalStyle.Render(m.retentionBuf)
	if m.focus == settingsFieldRetention {
		retention += AccentStyle.Render("█")
	}
	writeField(settingsFieldRetention, "Retention (days)", retention)
	writeField(settingsFieldAutoPurge, "Auto purge", components.TogglePill(m.autoPurge))
	writeField(settingsFieldPin, "Pin high priority", components.TogglePill(m.pin))

	if m.saving {
		b.WriteString("\n\n" + MutedStyle.Render("Saving..."))
	}
	if m.purging {
		b.WriteString("\n\n" + MutedStyle.Render("Purging..."))
	}
	if m.saveErr != "" {
		b.WriteString("\n\n")
		b.WriteString(components.ErrorBox("Error", m.saveErr, m.width))
	}
	return components.TitledBox("Retention", b.String(), m.width)
}

func (m SettingsModel) handleFormKeys(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch {
	case isDown(msg):
		m.focus = (m.focus + 1) % settingsFieldCount
	case isUp(msg):
		m.focus = (m.focus - 1 + settingsFieldCount) % settingsFieldCount
	case isKey(msg, "ctrl+s"):
		return m.saveSettings()
	case isKey(msg, "p"):
		if !m.purging {
			m.confirmPurge = true
		}
	case isKey(msg, "e"):
		if !m.busyExp {
			m.exporting = true
			m.exportIdx = 0
		}
	case isSpace(msg), isEnter(msg), isKey(msg, "left"), isKey(msg, "right"):
		switch m.focus {
		case settingsFieldAutoPurge:
			m.autoPurge = !m.autoPurge
		case settingsFieldPin:
			m.pin = !m.pin
		}
	case isKey(msg, "backspace"):
		if m.focus == settingsFieldRetention && len(m.retentionBuf) > 0 {
			m.retentionBuf = m.retentionBuf[:len(m.retentionBuf)-1]
		}
	default:
		ch := msg.String()
		if m.focus == settingsFieldRetention && len(ch) == 1 && ch >= "0" && ch <= "9" {
			m.retentionBuf += ch
		}
	}
	return m, nil
}

func (m SettingsModel) saveSettings() (SettingsModel, tea.Cmd) {
	days, err := strconv.Atoi(strings.TrimSpace(m.retentionBuf))
	if err != nil || days <= 0 {
		m.saveErr = "Retention must be a positive number of days"
		return m, nil
	}

	autoPurge := m.autoPurge
	pin := m.pin
	input := api.UpdateSettingsInput{
		RetentionDays:   &days,
		AutoPurge:       &autoPurge,
		HighPriorityPin: &pin,
	}

	m.saving = true
	m.saveErr = ""
	return m, func() tea.Msg {
		settings, err := m.client.UpdateSettings(input)
		if err != nil {
			return errMsg{err}
		}
		return settingsSavedMsg{settings: *settings}
	}
}

// --- Purge ---

func (m SettingsModel) handleConfirmPurgeKeys(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		m.confirmPurge = false
		m.purging = true
		return m, func() tea.Msg {
			result, err := m.client.PurgeArticles()
			if err != nil {
				return errMsg{err}
			}
			return purgeDoneMsg{removed: result.Removed}
		}
	case isKey(msg, "n"), isBack(msg):
		m.confirmPurge = false
	}
	return m, nil
}

// --- Export ---

func (m SettingsModel) renderExportPicker() string {
	if m.busyExp {
		return components.TitledBox("Export Keywords", MutedStyle.Render("Exporting..."), m.width)
	}
	var b strings.Builder
	for i, format := range exportFormats {
		label := strings.ToUpper(string(format))
		if i == m.exportIdx {
			b.WriteString(SelectedStyle.Render("  > " + label))
		} else {
			b.WriteString(NormalStyle.Render("    " + label))
		}
		if i < len(exportFormats)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n" + MutedStyle.Render("Writes to the current directory."))
	return components.TitledBox("Export Keywords", b.String(), m.width)
}

func (m SettingsModel) handleExportKeys(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	if m.busyExp {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.exporting = false
	case isUp(msg):
		if m.exportIdx > 0 {
			m.exportIdx--
		}
	case isDown(msg):
		if m.exportIdx < len(exportFormats)-1 {
			m.exportIdx++
		}
	case isEnter(msg):
		format := exportFormats[m.exportIdx]
		m.busyExp = true
		return m, func() tea.Msg {
			keywords, err := m.client.ListKeywords()
			if err != nil {
				return errMsg{err}
			}
			path := export.Filename(format, time.Now())
			file, err := os.Create(path)
			if err != nil {
				return errMsg{fmt.Errorf("create export file: %w", err)}
			}
			defer file.Close()
			if err := export.WriteKeywords(file, format, keywords); err != nil {
				return errMsg{fmt.Errorf("write export: %w", err)}
			}
			return exportDoneMsg{path: path, count: len(keywords)}
		}
	}
	return m, nil
}

// --- Helpers ---

func (m SettingsModel) loadSettings() tea.Msg {
	settings, err := m.client.GetSettings()
	if err != nil {
		return errMsg{err}
	}
	return settingsLoadedMsg{settings: *settings}
}
